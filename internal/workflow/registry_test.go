package workflow

import (
	"testing"

	"thesisrepo/internal/model"
	"thesisrepo/internal/permission"

	"github.com/stretchr/testify/assert"
)

func TestLookupDefinedEdges(t *testing.T) {
	tests := []struct {
		from, to model.Status
		caps     []permission.Capability
		owner    bool
	}{
		{model.StatusPending, model.StatusUnderReview, []permission.Capability{permission.CanReview, permission.CanManageWorkflow}, false},
		{model.StatusUnderReview, model.StatusPublished, []permission.Capability{permission.CanApprove, permission.CanManageWorkflow}, false},
		{model.StatusUnderReview, model.StatusApproved, []permission.Capability{permission.CanApprove, permission.CanManageWorkflow}, false},
		{model.StatusUnderReview, model.StatusNeedsRevision, []permission.Capability{permission.CanReview, permission.CanManageWorkflow}, false},
		{model.StatusUnderReview, model.StatusRejected, []permission.Capability{permission.CanApprove, permission.CanManageWorkflow}, false},
		{model.StatusNeedsRevision, model.StatusPending, []permission.Capability{permission.CanManageWorkflow}, true},
		{model.StatusApproved, model.StatusCuration, []permission.Capability{permission.CanManageWorkflow}, false},
		{model.StatusCuration, model.StatusReadyForPublication, []permission.Capability{permission.CanManageWorkflow}, false},
		{model.StatusReadyForPublication, model.StatusPublished, []permission.Capability{permission.CanManageWorkflow}, false},
	}

	for _, tt := range tests {
		rule, ok := Lookup(tt.from, tt.to)
		assert.True(t, ok, "edge %s -> %s should exist", tt.from, tt.to)
		assert.ElementsMatch(t, tt.caps, rule.Capabilities, "edge %s -> %s", tt.from, tt.to)
		assert.Equal(t, tt.owner, rule.OwnerAllowed, "edge %s -> %s", tt.from, tt.to)
	}
}

func TestLookupRejectsEverythingElse(t *testing.T) {
	defined := map[edge]bool{}
	for e := range transitions {
		defined[e] = true
	}

	// Exhaustive: every (from, to) pair outside the table must be absent,
	// including every self-loop and every edge out of the terminal states.
	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			if defined[edge{from, to}] {
				continue
			}
			_, ok := Lookup(from, to)
			assert.False(t, ok, "edge %s -> %s must not exist", from, to)
		}
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	assert.Empty(t, TargetsFrom(model.StatusPublished))
	assert.Empty(t, TargetsFrom(model.StatusRejected))
}

func TestTargetsFrom(t *testing.T) {
	targets := TargetsFrom(model.StatusUnderReview)
	assert.ElementsMatch(t, []model.Status{
		model.StatusPublished,
		model.StatusApproved,
		model.StatusNeedsRevision,
		model.StatusRejected,
	}, targets)
}

func TestRuleAllowed(t *testing.T) {
	rule, ok := Lookup(model.StatusNeedsRevision, model.StatusPending)
	assert.True(t, ok)

	// Owner may resubmit regardless of capabilities.
	assert.True(t, rule.Allowed(permission.CapabilitySet{}, true))
	// Workflow managers may force the resubmission.
	assert.True(t, rule.Allowed(permission.Resolve(model.RoleLibrarian), false))
	// Anyone else may not.
	assert.False(t, rule.Allowed(permission.Resolve(model.RoleFaculty), false))
	assert.False(t, rule.Allowed(permission.Resolve(model.RoleStudent), false))
}
