package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the embedding provider is down but lexical-only
	// search still works.
	Degraded Status = "degraded"
	// Unhealthy indicates the search index is unreachable.
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

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	index     IndexPinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil when the vector channel is
// disabled.
func New(index IndexPinger, embedding EmbeddingChecker) *Service {
	return &Service{index: index, embedding: embedding}
}

// Check runs health checks against all components. The index is the hard
// dependency: without it no channel can retrieve, so its failure makes the
// whole service unhealthy. A failing embedder only degrades to lexical-only.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.index.Ping(ctx); err != nil {
		checks["index"] = CheckError
		status = Unhealthy
	} else {
		checks["index"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
