package like

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var togglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "like_toggles_total",
		Help: "Completed like toggles by target kind and resulting state.",
	},
	[]string{"kind", "liked"},
)
