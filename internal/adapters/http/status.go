package httpadapter

import (
	"net/http"
	"strings"
	"time"
)

type serviceStatusResponse struct {
	Status          string            `json:"status"`
	Services        map[string]string `json:"services"`
	APIVersion      string            `json:"api_version"`
	CategoriesCount int               `json:"categories_count"`
	Timestamp       string            `json:"timestamp"`
}

// testStatus reports vendor reachability without touching the vendors:
// the circuit breaker state of past calls stands in for a live probe.
func (rt *Router) testStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	var states map[string]string
	if rt.executor != nil {
		states = rt.executor.States()
	}

	services := map[string]string{
		"llamaparse": vendorAvailability(states, "llamaparse."),
		"openai":     vendorAvailability(states, "openai."),
	}

	status := "healthy"
	for _, state := range services {
		if state == "unavailable" {
			status = "degraded"
			break
		}
	}

	writeJSON(w, http.StatusOK, serviceStatusResponse{
		Status:          status,
		Services:        services,
		APIVersion:      rt.opts.APIVersion,
		CategoriesCount: len(rt.catalog.Get("").Labels()),
		Timestamp:       isoTimestamp(time.Now()),
	})
}

// vendorAvailability folds one vendor's breaker states into a single word.
// The worst state wins; a vendor with no recorded calls yet is unknown.
func vendorAvailability(states map[string]string, prefix string) string {
	result := "unknown"
	for operation, state := range states {
		if !strings.HasPrefix(operation, prefix) {
			continue
		}
		switch state {
		case "open":
			return "unavailable"
		case "half-open":
			result = "degraded"
		case "closed":
			if result == "unknown" {
				result = "available"
			}
		}
	}
	return result
}
