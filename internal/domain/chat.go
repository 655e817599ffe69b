package domain

// ChatTurn is the provider-agnostic shape of one replayed conversation turn.
// Role is "user" or "model".
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)
