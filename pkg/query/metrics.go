package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cookbook_query_rejections_total",
		Help: "Listing requests rejected before reaching the database",
	},
	[]string{"resource"},
)
