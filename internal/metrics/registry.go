// Package metrics holds the service's Prometheus collectors. Nothing is
// registered at import time: main calls Register once.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "eacsearch"

var registerOnce sync.Once

// Register adds every collector to the default registry. Later calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,

			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			EmbeddingTokensTotal,
			EmbeddingErrorsTotal,
			EmbeddingCacheTotal,

			OfferSearchTotal,
			OfferSearchDuration,
			SuggestSourceTotal,
			SuggestStaleTotal,
			SuggestSessions,
		)
	})
}
