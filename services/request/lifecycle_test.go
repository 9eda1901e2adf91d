package request

import (
	"testing"

	"tidybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatusLegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   models.RequestStatus
		action Action
		want   models.RequestStatus
	}{
		{"propose from pending", models.RequestPendingReview, ActionPropose, models.RequestProposedAlternative},
		{"confirm from pending", models.RequestPendingReview, ActionConfirm, models.RequestConfirmedByHousekeeper},
		{"decline from pending", models.RequestPendingReview, ActionDeclineByHousekeeper, models.RequestDeclinedByHousekeeper},
		{"accept proposal", models.RequestProposedAlternative, ActionAcceptProposal, models.RequestApprovedScheduled},
		{"decline proposal", models.RequestProposedAlternative, ActionDeclineProposal, models.RequestDeclinedByHomeowner},
		{"homeowner cancels pending", models.RequestPendingReview, ActionCancelByHomeowner, models.RequestCancelledByHomeowner},
		{"homeowner cancels proposed", models.RequestProposedAlternative, ActionCancelByHomeowner, models.RequestCancelledByHomeowner},
		{"housekeeper cancels pending", models.RequestPendingReview, ActionCancelByHousekeeper, models.RequestCancelledByHousekeeper},
		{"complete scheduled", models.RequestApprovedScheduled, ActionComplete, models.RequestCompleted},
		{"complete confirmed", models.RequestConfirmedByHousekeeper, ActionComplete, models.RequestCompleted},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStatus(tc.from, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextStatusIllegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   models.RequestStatus
		action Action
	}{
		{"accept proposal from pending", models.RequestPendingReview, ActionAcceptProposal},
		{"decline proposal from pending", models.RequestPendingReview, ActionDeclineProposal},
		{"propose twice", models.RequestProposedAlternative, ActionPropose},
		{"confirm after proposal", models.RequestProposedAlternative, ActionConfirm},
		{"housekeeper cancels proposed", models.RequestProposedAlternative, ActionCancelByHousekeeper},
		{"complete pending", models.RequestPendingReview, ActionComplete},
		{"cancel completed", models.RequestCompleted, ActionCancelByHomeowner},
		{"propose after decline", models.RequestDeclinedByHousekeeper, ActionPropose},
		{"accept after cancel", models.RequestCancelledByHomeowner, ActionAcceptProposal},
		{"unknown action", models.RequestPendingReview, Action("teleport")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NextStatus(tc.from, tc.action)
			var transitionErr *TransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, tc.from, transitionErr.From)
			assert.Equal(t, tc.action, transitionErr.Action)
		})
	}
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	terminal := []models.RequestStatus{
		models.RequestDeclinedByHomeowner,
		models.RequestDeclinedByHousekeeper,
		models.RequestCancelledByHomeowner,
		models.RequestCancelledByHousekeeper,
		models.RequestCompleted,
	}
	actions := []Action{
		ActionPropose, ActionConfirm, ActionDeclineByHousekeeper,
		ActionAcceptProposal, ActionDeclineProposal,
		ActionCancelByHomeowner, ActionCancelByHousekeeper, ActionComplete,
	}
	for _, status := range terminal {
		for _, action := range actions {
			_, err := NextStatus(status, action)
			assert.Error(t, err, "%s from %s must be rejected", action, status)
		}
	}
}
