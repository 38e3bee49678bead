package blobstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	backendLocal = "local"
	backendS3    = "s3"

	opWrite  = "write"
	opMirror = "mirror"
	opRead   = "read"
	opRemove = "remove"
)

var blobOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fileshare_blob_operations_total",
		Help: "Blob store operations by backend and outcome",
	},
	[]string{"operation", "backend", "outcome"},
)

func count(op, backend string, o Outcome) {
	blobOperations.WithLabelValues(op, backend, string(o)).Inc()
}
