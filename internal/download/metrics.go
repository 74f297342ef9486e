package download

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	downloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cdsego_downloads_total",
		Help: "Product downloads by outcome",
	}, []string{
		"outcome", // success|skipped|failed
	})

	downloadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cdsego_download_bytes_total",
		Help: "Bytes written to completed product files",
	})
)
