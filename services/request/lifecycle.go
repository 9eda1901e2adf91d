package request

import "tidybook/models"

// Action is a lifecycle operation on a service request. Submission is not an
// action: a request is born in pending_housekeeper_review.
type Action string

const (
	ActionPropose              Action = "propose_alternative"
	ActionConfirm              Action = "confirm"
	ActionDeclineByHousekeeper Action = "decline_by_housekeeper"
	ActionAcceptProposal       Action = "accept_proposal"
	ActionDeclineProposal      Action = "decline_proposal"
	ActionCancelByHomeowner    Action = "cancel_by_homeowner"
	ActionCancelByHousekeeper  Action = "cancel_by_housekeeper"
	ActionComplete             Action = "complete"
)

// transitions is the full state machine: for each action, the source states
// it is legal from and the state it lands in. Anything not listed here is an
// illegal (state, action) pair and is rejected, never silently ignored.
var transitions = map[Action]map[models.RequestStatus]models.RequestStatus{
	ActionPropose: {
		models.RequestPendingReview: models.RequestProposedAlternative,
	},
	ActionConfirm: {
		models.RequestPendingReview: models.RequestConfirmedByHousekeeper,
	},
	ActionDeclineByHousekeeper: {
		models.RequestPendingReview: models.RequestDeclinedByHousekeeper,
	},
	ActionAcceptProposal: {
		models.RequestProposedAlternative: models.RequestApprovedScheduled,
	},
	ActionDeclineProposal: {
		models.RequestProposedAlternative: models.RequestDeclinedByHomeowner,
	},
	ActionCancelByHomeowner: {
		models.RequestPendingReview:       models.RequestCancelledByHomeowner,
		models.RequestProposedAlternative: models.RequestCancelledByHomeowner,
	},
	ActionCancelByHousekeeper: {
		models.RequestPendingReview: models.RequestCancelledByHousekeeper,
	},
	ActionComplete: {
		models.RequestApprovedScheduled:      models.RequestCompleted,
		models.RequestConfirmedByHousekeeper: models.RequestCompleted,
	},
}

// NextStatus resolves the state an action moves a request into, or a
// TransitionError when the action is illegal from the current state.
func NextStatus(from models.RequestStatus, action Action) (models.RequestStatus, error) {
	if to, ok := transitions[action][from]; ok {
		return to, nil
	}
	return "", &TransitionError{From: from, Action: action}
}
