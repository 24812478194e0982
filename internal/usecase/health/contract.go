package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Checker is a named component probe (synonym index, text index).
type Checker interface {
	HealthCheck(ctx context.Context) error
}
