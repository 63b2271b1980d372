// Package services – domain metrics.
//
// Counters for the business events the service layer produces, registered
// alongside the HTTP metrics from the middleware package. All collectors are
// safe for concurrent use.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// giftsCreated counts successfully persisted gifts.
	giftsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gifts_created_total",
		Help: "Total number of gift pages created.",
	})

	// giftViews counts registered page views across all gifts.
	giftViews = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gift_views_total",
		Help: "Total number of gift page views recorded.",
	})

	// giftLikes counts counted likes across all gifts (replayed like
	// tokens do not increment this).
	giftLikes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gift_likes_total",
		Help: "Total number of gift likes recorded.",
	})
)

func init() {
	prometheus.MustRegister(giftsCreated, giftViews, giftLikes)
}
