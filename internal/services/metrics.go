package services

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts successful product mutations.
type Metrics struct {
	Created prometheus.Counter
	Updated prometheus.Counter
	Deleted prometheus.Counter
}

// NewMetrics creates the product counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_products_created_total",
			Help: "Total number of products created",
		}),
		Updated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_products_updated_total",
			Help: "Total number of products updated",
		}),
		Deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_products_deleted_total",
			Help: "Total number of products deleted",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Created, m.Updated, m.Deleted)
	}
	return m
}
