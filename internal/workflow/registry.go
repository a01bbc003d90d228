package workflow

import (
	"thesisrepo/internal/model"
	"thesisrepo/internal/permission"
)

// Package workflow defines the status registry: the fixed directed graph of
// allowed document-status transitions and the capability each edge requires.
// The registry is the single source of truth — the engine rejects any edge
// not listed here.

// Rule describes who may trigger one edge of the status graph.
// Any one of Capabilities suffices. OwnerAllowed additionally permits the
// document's owner regardless of capabilities (resubmission path).
type Rule struct {
	Capabilities []permission.Capability
	OwnerAllowed bool
}

type edge struct {
	from, to model.Status
}

var transitions = map[edge]Rule{
	{model.StatusPending, model.StatusUnderReview}: {
		Capabilities: []permission.Capability{permission.CanReview, permission.CanManageWorkflow},
	},
	{model.StatusUnderReview, model.StatusPublished}: {
		Capabilities: []permission.Capability{permission.CanApprove, permission.CanManageWorkflow},
	},
	{model.StatusUnderReview, model.StatusApproved}: {
		Capabilities: []permission.Capability{permission.CanApprove, permission.CanManageWorkflow},
	},
	{model.StatusUnderReview, model.StatusNeedsRevision}: {
		Capabilities: []permission.Capability{permission.CanReview, permission.CanManageWorkflow},
	},
	{model.StatusUnderReview, model.StatusRejected}: {
		Capabilities: []permission.Capability{permission.CanApprove, permission.CanManageWorkflow},
	},
	{model.StatusNeedsRevision, model.StatusPending}: {
		Capabilities: []permission.Capability{permission.CanManageWorkflow},
		OwnerAllowed: true,
	},
	{model.StatusApproved, model.StatusCuration}: {
		Capabilities: []permission.Capability{permission.CanManageWorkflow},
	},
	{model.StatusCuration, model.StatusReadyForPublication}: {
		Capabilities: []permission.Capability{permission.CanManageWorkflow},
	},
	{model.StatusReadyForPublication, model.StatusPublished}: {
		Capabilities: []permission.Capability{permission.CanManageWorkflow},
	},
}

// Lookup returns the rule for the edge from → to, if the registry defines it.
func Lookup(from, to model.Status) (Rule, bool) {
	r, ok := transitions[edge{from, to}]
	return r, ok
}

// TargetsFrom returns the statuses reachable from the given status.
// Used by the API to advertise available actions; order is unspecified.
func TargetsFrom(from model.Status) []model.Status {
	var out []model.Status
	for e := range transitions {
		if e.from == from {
			out = append(out, e.to)
		}
	}
	return out
}

// Allowed reports whether the rule permits an actor holding caps, who may or
// may not own the document, to traverse the edge.
func (r Rule) Allowed(caps permission.CapabilitySet, isOwner bool) bool {
	if r.OwnerAllowed && isOwner {
		return true
	}
	for _, c := range r.Capabilities {
		if caps.Has(c) {
			return true
		}
	}
	return false
}
