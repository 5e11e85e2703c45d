package auth

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Resource is a route group guarded by the permission table.
type Resource string

const (
	ResourceClients      Resource = "clients"
	ResourceDrafts       Resource = "drafts"
	ResourceReservations Resource = "reservations"
	ResourceDashboard    Resource = "dashboard"
	ResourceSubmissions  Resource = "submissions"
)

//go:embed policy.rego
var policySource string

// Authorizer evaluates the route-permission policy.
type Authorizer struct {
	query rego.PreparedEvalQuery
}

// NewAuthorizer compiles the embedded policy.
func NewAuthorizer(ctx context.Context) (*Authorizer, error) {
	query, err := rego.New(
		rego.Query("data.backoffice.authz.allow"),
		rego.Module("policy.rego", policySource),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile permission policy: %w", err)
	}
	return &Authorizer{query: query}, nil
}

// Allowed reports whether role may access resource.
func (a *Authorizer) Allowed(ctx context.Context, role Role, resource Resource) (bool, error) {
	input := map[string]interface{}{
		"role":     string(role),
		"resource": string(resource),
	}
	rs, err := a.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate permission policy: %w", err)
	}
	return rs.Allowed(), nil
}
