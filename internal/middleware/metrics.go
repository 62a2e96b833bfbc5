package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The caller registers it on the app and mounts the scrape endpoint.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
