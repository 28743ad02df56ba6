package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dreamcar_recommend_requests_total",
		Help: "Recommendation requests by endpoint.",
	}, []string{"endpoint"})

	emptyRankings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dreamcar_empty_rankings_total",
		Help: "Ranking calls that came back empty (failure fallback or no matches).",
	})

	chatSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dreamcar_chat_sessions_active",
		Help: "Currently open chat sessions.",
	})
)
