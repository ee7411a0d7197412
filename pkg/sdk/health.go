package analyzer

import (
	"context"

	healthuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/health"
)

// HealthStatus represents the aggregated system health. An untrained
// model is still healthy; ModelTrained is informational.
type HealthStatus struct {
	Status       string            // "ok", "degraded", "error"
	ModelTrained bool
	Checks       map[string]string // component -> "ok"/"error"
}

// Health checks the health of all client components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:       string(report.Status),
		ModelTrained: report.ModelTrained,
		Checks:       checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
