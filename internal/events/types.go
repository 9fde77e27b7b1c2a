package events

// Envelope is the outer payload of an Events API delivery.
// Type "url_verification" carries the challenge handshake; "event_callback"
// wraps an inner event.
type Envelope struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge,omitempty"`

	TeamID       string `json:"team_id,omitempty"`
	EnterpriseID string `json:"enterprise_id,omitempty"`
	APIAppID     string `json:"api_app_id,omitempty"`
	EventID      string `json:"event_id,omitempty"`

	Event *InnerEvent `json:"event,omitempty"`
}

// InnerEvent is the workspace activity inside an event_callback. Only the
// fields this service logs are mapped.
type InnerEvent struct {
	Type    string `json:"type"`
	User    string `json:"user,omitempty"`
	Channel string `json:"channel,omitempty"`
	Subtype string `json:"subtype,omitempty"`
}

const (
	TypeURLVerification = "url_verification"
	TypeEventCallback   = "event_callback"
)
