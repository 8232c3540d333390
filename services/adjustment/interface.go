package adjustment

import (
	"context"

	"servicehub/models"
)

// Response actions a customer may take on a pending adjustment.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// RequestAdjustmentRequest carries a provider's additional-payment request.
type RequestAdjustmentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Reason      string  `json:"reason" binding:"required"`
	Description string  `json:"description"`
}

// RespondRequest carries the customer's resolution of a pending adjustment.
type RespondRequest struct {
	Action string `json:"action" binding:"required"`
}

// RespondResult is the resolved adjustment plus, on approval, the booking's
// new total cost.
type RespondResult struct {
	Adjustment *models.PaymentAdjustment `json:"adjustment"`
	NewTotal   float64                   `json:"newTotal,omitempty"`
}

// AdjustmentService manages the additional-payment sub-workflow nested
// inside an active booking: provider requests, customer resolves, at most
// one resolution per adjustment.
type AdjustmentService interface {
	Request(ctx context.Context, bookingID, providerUserID string, req RequestAdjustmentRequest) (*models.PaymentAdjustment, error)
	Respond(ctx context.Context, adjustmentID, customerID string, req RespondRequest) (*RespondResult, error)
	List(ctx context.Context, bookingID, actorUserID string) ([]models.PaymentAdjustment, error)
}
