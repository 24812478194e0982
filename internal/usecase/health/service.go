package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is down.
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
	db         DBPinger
	components map[string]Checker
}

// New creates a Service. components maps a check name to its probe.
func New(db DBPinger, components map[string]Checker) *Service {
	return &Service{db: db, components: components}
}

// Check runs health checks against all components.
// A failing database makes the service unhealthy, any other failure degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components)+1)

	dbOK := s.db.Ping(ctx) == nil
	checks["database"] = result(dbOK)

	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}
	sort.Strings(names)

	status := Healthy
	for _, name := range names {
		c := s.components[name]
		if c == nil {
			continue
		}
		ok := c.HealthCheck(ctx) == nil
		checks[name] = result(ok)
		if !ok {
			status = Degraded
		}
	}
	if !dbOK {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
