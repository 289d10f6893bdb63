// Package metrics holds Prometheus instruments used across the service.  All
// collectors are registered with the global registry, so importing this
// package is enough to expose them on the metrics listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RouterDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_decisions_total",
			Help: "Routing decisions by outcome (pass, rewrite, forbidden, unauthorized, signin).",
		}, []string{"outcome"})

	HostKindTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_host_kind_total",
			Help: "Non-platform requests by host kind (base, subdomain, custom).",
		}, []string{"kind"})

	PreviewCookieTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preview_cookie_total",
			Help: "Preview cookie mutations by action (set, clear).",
		}, []string{"action"})

	StoreLookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_lookup_total",
			Help: "Store lookups by strategy and result (hit, miss, error).",
		}, []string{"strategy", "result"})

	StorefrontNotFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_not_found_total",
			Help: "Storefront renders that resolved to no store.",
		})
)

func init() {
	prometheus.MustRegister(
		RouterDecisionsTotal,
		HostKindTotal,
		PreviewCookieTotal,
		StoreLookupTotal,
		StorefrontNotFoundTotal,
	)
}
