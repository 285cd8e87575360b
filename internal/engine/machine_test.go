package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivedigital/contentflow/internal/types"
)

func TestCanTransition_TableEdges(t *testing.T) {
	legal := []struct{ from, to types.WorkflowStatus }{
		{types.StatusDraft, types.StatusGenerating},
		{types.StatusGenerating, types.StatusReview},
		{types.StatusGenerating, types.StatusDraft},
		{types.StatusReview, types.StatusGenerating},
		{types.StatusReview, types.StatusApproved},
		{types.StatusApproved, types.StatusNotified},
	}
	for _, tt := range legal {
		assert.True(t, CanTransition(tt.from, tt.to), "%s → %s should be legal", tt.from, tt.to)
	}

	illegal := []struct{ from, to types.WorkflowStatus }{
		{types.StatusDraft, types.StatusReview},
		{types.StatusDraft, types.StatusApproved},
		{types.StatusDraft, types.StatusNotified},
		{types.StatusReview, types.StatusDraft},
		{types.StatusReview, types.StatusNotified},
		{types.StatusApproved, types.StatusReview},
		{types.StatusApproved, types.StatusDraft},
		{types.StatusNotified, types.StatusDraft},
		{types.StatusNotified, types.StatusApproved},
	}
	for _, tt := range illegal {
		assert.False(t, CanTransition(tt.from, tt.to), "%s → %s should be illegal", tt.from, tt.to)
	}
}

func TestPermittedNext(t *testing.T) {
	assert.ElementsMatch(t,
		[]types.WorkflowStatus{types.StatusReview, types.StatusDraft},
		PermittedNext(types.StatusGenerating))
	assert.Empty(t, PermittedNext(types.StatusNotified))
}
