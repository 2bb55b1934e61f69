// Package metrics defines and registers all custom Prometheus metrics for the
// ticket registry. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ticket_registry"

// TicketsCreatedTotal counts successfully registered tickets.
var TicketsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets successfully registered.",
	},
)

// TicketsRejectedTotal counts ticket creation requests that were refused.
// Label:
//   - reason: "validation" (bad form input) or "quota" (per-vatin limit hit)
var TicketsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_rejected_total",
		Help:      "Total number of ticket creation requests rejected, by reason.",
	},
	[]string{"reason"},
)

// TicketLookupsTotal counts ticket detail lookups.
// Label:
//   - result: "hit" (ticket found) or "miss" (not found)
var TicketLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_lookups_total",
		Help:      "Total number of ticket lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// LoginsTotal counts completed identity-provider logins.
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins via the identity provider.",
	},
)

// CountCacheTotal counts landing-page ticket-count cache reads.
// Label:
//   - result: "hit", "miss", or "error"
var CountCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "count_cache_total",
		Help:      "Total number of ticket-count cache reads, by result.",
	},
	[]string{"result"},
)
