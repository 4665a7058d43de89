package dto

type StartSelectionRequest struct {
	UserId   string `json:"user_id" validate:"required"`
	Source   string `json:"source" validate:"required"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

type ChooseRequest struct {
	UserId string `json:"user_id" validate:"required"`
	Value  string `json:"value" validate:"required"`

	// Optional customer identity, refreshed on every update the way chat
	// transports deliver it. Used for the lead when the dialogue
	// completes.
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

type ResetRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

// StageOptionsResponse describes one narrowing step: which attribute is
// being asked and the ordered values the transport may render as buttons.
type StageOptionsResponse struct {
	Source      string            `json:"source"`
	Stage       int               `json:"stage"`
	TotalStages int               `json:"total_stages"`
	Attribute   string            `json:"attribute"`
	Options     []string          `json:"options"`
	Filter      map[string]string `json:"filter"`
}

type ResolvedItemResponse struct {
	Selection    map[string]string `json:"selection"`
	Price        string            `json:"price"`
	Availability string            `json:"availability"`
	Record       map[string]string `json:"record"`
}

// ChooseResponse is the outcome of one accepted (or terminal) choice.
// Exactly one of Next / Item is set depending on Status.
type ChooseResponse struct {
	Status string                `json:"status"`
	Next   *StageOptionsResponse `json:"next,omitempty"`
	Item   *ResolvedItemResponse `json:"item,omitempty"`
}
