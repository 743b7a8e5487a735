// Package observability defines the loader's prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ClassesDeserialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descriptor_loader_classes_deserialized_total",
		Help: "Total number of class descriptors materialized from metadata.",
	})

	ClassesAbsent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descriptor_loader_classes_absent_total",
		Help: "Total number of identifiers cached as permanently absent.",
	})

	IncompatibleArtifacts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descriptor_loader_incompatible_artifacts_total",
		Help: "Total number of artifacts rejected for ABI version incompatibility.",
	})

	MalformedPayloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descriptor_loader_malformed_payloads_total",
		Help: "Total number of payloads that failed wire decoding.",
	})

	ErrorTypes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descriptor_loader_error_types_total",
		Help: "Total number of type references degraded to error types.",
	})

	PackageScopes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "descriptor_loader_package_scopes_total",
		Help: "Total number of package member scopes materialized.",
	})
)
