package slack

// Team identifies a Slack team or enterprise org in API responses.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// AuthedUser is the grant of the human who authorized the app.
// Token and scopes are only present when user scopes were requested.
type AuthedUser struct {
	ID          string `json:"id"`
	Scope       string `json:"scope,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
}

// OAuthV2Response is the response from Slack's oauth.v2.access endpoint.
// AccessToken/Scope/BotUserID describe the bot-level grant; AuthedUser the
// user-level one. Either side may be absent depending on requested scopes.
type OAuthV2Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	AppID       string `json:"app_id"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	BotUserID   string `json:"bot_user_id"`

	AuthedUser          AuthedUser `json:"authed_user"`
	Team                *Team      `json:"team"`
	Enterprise          *Team      `json:"enterprise"`
	IsEnterpriseInstall bool       `json:"is_enterprise_install"`
}

// APIError is a Slack API failure (ok:false) carrying the platform's error code
// (e.g. "invalid_code"). The code is safe to surface in redirect URLs.
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return "slack api error: " + e.Code
}
