package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. ModelTrained is informational:
// an untrained analyzer is still healthy, it just cannot serve verdicts yet.
type Report struct {
	Status       Status
	ModelTrained bool
	Checks       map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store StorePinger
	model ModelReporter
}

// New creates a Service. store can be nil.
func New(store StorePinger, model ModelReporter) *Service {
	return &Service{store: store, model: model}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			checks["artifact_store"] = CheckError
		} else {
			checks["artifact_store"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{
		Status:       status,
		ModelTrained: s.model.ModelTrained(ctx),
		Checks:       checks,
	}
}
