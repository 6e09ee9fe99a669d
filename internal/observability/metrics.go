// Package observability holds the application's Prometheus metric registry.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// UploadBytes counts bytes written to the uploads directory.
	UploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_upload_bytes_total",
		Help: "Total number of bytes stored from image uploads",
	})

	// BlogWrites counts blog create/update/delete operations by kind.
	BlogWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_blog_writes_total",
		Help: "Total number of blog write operations by kind",
	}, []string{"kind"})
)
