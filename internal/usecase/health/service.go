package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results plus index figures.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Vectors int64
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
	index     IndexSizer
}

// New creates a Service. embedding can be nil.
func New(db DBPinger, embedding EmbeddingChecker, index IndexSizer) *Service {
	return &Service{db: db, embedding: embedding, index: index}
}

// Check runs health checks against all components. An unreadable index
// size degrades the report but keeps the vector count at zero.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	var vectors int64
	if size, err := s.index.Size(ctx); err != nil {
		checks["index"] = CheckError
	} else {
		checks["index"] = CheckOK
		vectors = size
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Vectors: vectors}
}
