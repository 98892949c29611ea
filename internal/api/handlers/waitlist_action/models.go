package waitlist_action

const (
	actionAccept  = "accept"
	actionDecline = "decline"
	actionCancel  = "cancel"
)

// ActionRequest HTTP request model; notes для accept и decline, reason для cancel
type ActionRequest struct {
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Reason string  `json:"reason,omitempty" validate:"max=500"`
}
