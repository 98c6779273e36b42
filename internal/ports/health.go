package ports

import "context"

// HealthChecker reports the health of one component the dialog host relies
// on, such as the task store client or the dialog manager.
type HealthChecker interface {
	// Name identifies the component in readiness output.
	Name() string

	// HealthCheck returns nil when healthy. It must honor ctx.
	HealthCheck(ctx context.Context) error
}

// Impact says what a failing check means for readiness.
type Impact int

const (
	// ImpactCritical failures make the service not ready.
	ImpactCritical Impact = iota

	// ImpactDegraded failures are reported but the service stays ready.
	// The task store is one: while it is down dialogs still open and edit,
	// and submissions fail with a message the user can see.
	ImpactDegraded
)

// String returns "critical" or "degraded".
func (i Impact) String() string {
	if i == ImpactDegraded {
		return "degraded"
	}
	return "critical"
}

// HealthResult is the outcome of one check.
type HealthResult struct {
	Err    error
	Impact Impact
}

// HealthRegistry runs the registered checks for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker, impact Impact)

	// CheckAll runs every check and returns the results by checker name.
	CheckAll(ctx context.Context) map[string]HealthResult
}
