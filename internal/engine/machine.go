package engine

import "github.com/fivedigital/contentflow/internal/types"

// transitions is the full edge set of the pipeline state machine. The node
// diagram in the editor is presentation only; this table is the authority.
//
//	DRAFT → GENERATING → REVIEW → APPROVED → NOTIFIED
//
// GENERATING falls back to DRAFT when generation fails or is abandoned.
// REVIEW loops back to GENERATING on regenerate.
var transitions = map[types.WorkflowStatus][]types.WorkflowStatus{
	types.StatusDraft:      {types.StatusGenerating},
	types.StatusGenerating: {types.StatusReview, types.StatusDraft},
	types.StatusReview:     {types.StatusGenerating, types.StatusApproved},
	types.StatusApproved:   {types.StatusNotified},
	types.StatusNotified:   {},
}

// CanTransition reports whether from → to is a legal stage transition.
func CanTransition(from, to types.WorkflowStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PermittedNext returns the stages reachable from the given stage.
func PermittedNext(from types.WorkflowStatus) []types.WorkflowStatus {
	next := transitions[from]
	out := make([]types.WorkflowStatus, len(next))
	copy(out, next)
	return out
}
