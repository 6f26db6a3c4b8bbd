// Package lifecycle implements the complaint status state machine and its
// role-gated transition guard.
package lifecycle

import (
	"fmt"

	"github.com/complaintdesk/triage/internal/domain"
)

// transitionKey identifies one edge of the state machine.
type transitionKey struct {
	from domain.Status
	to   domain.Status
}

// guards maps each allowed transition to the roles permitted to drive it.
// Approved and rejected are terminal: no edge leaves them. The table is the
// single source of truth; a deployment that grants specialists a transition
// edits this table, not the call sites.
var guards = map[transitionKey][]domain.Role{
	{domain.StatusPending, domain.StatusApproved}: {domain.RoleOfficer},
	{domain.StatusPending, domain.StatusRejected}: {domain.RoleOfficer},
}

// Check validates a transition attempt. It returns nil when actor may move a
// complaint from current to target, domain.ErrInvalidTransition when the
// edge does not exist, and domain.ErrUnauthorized when the edge exists but
// the role is not permitted. The role is re-checked here on every attempt,
// never only at queue-render time.
func Check(current, target domain.Status, actor domain.Role) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown target status %q", domain.ErrInvalidTransition, target)
	}
	roles, ok := guards[transitionKey{current, target}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, target)
	}
	for _, r := range roles {
		if r == actor {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not move %s -> %s", domain.ErrUnauthorized, actor, current, target)
}

// CanCreate reports whether actor may submit a new complaint. Any
// authenticated role can; creation always enters at pending.
func CanCreate(actor domain.Role) error {
	if !actor.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrUnauthorized, actor)
	}
	return nil
}

// TargetsFrom returns the statuses reachable from current, in a fixed order.
func TargetsFrom(current domain.Status) []domain.Status {
	var out []domain.Status
	for _, target := range []domain.Status{domain.StatusApproved, domain.StatusRejected} {
		if _, ok := guards[transitionKey{current, target}]; ok {
			out = append(out, target)
		}
	}
	return out
}
