// Package install defines the Installation record (one workspace's
// authorization grant) and the validated mapping from Slack's token-exchange
// response into it.
package install

import (
	"errors"
	"strings"

	"github.com/dropDatabas3/crewmate/internal/slack"
)

// ErrIncomplete indica que la respuesta del exchange no trae el grant de bot
// completo (access_token + bot_user_id + scope). Un registro sin bot no sirve:
// el asistente no puede actuar, así que se rechaza antes de persistir.
var ErrIncomplete = errors.New("incomplete installation data")

// Workspace identifica un team o una organización enterprise.
type Workspace struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name,omitempty" firestore:"name,omitempty"`
}

// Bot es el grant de bot de la instalación. Requerido para que el asistente
// pueda actuar de forma autónoma en el workspace.
type Bot struct {
	ID     string   `json:"id" firestore:"id"`
	UserID string   `json:"userId" firestore:"userId"`
	Token  string   `json:"token" firestore:"token"`
	Scopes []string `json:"scopes" firestore:"scopes"`
}

// User es el grant del humano que autorizó. Token y scopes son opcionales y se
// OMITEN por completo cuando el exchange no los trae (nunca null/placeholder).
type User struct {
	ID     string   `json:"id" firestore:"id"`
	Token  string   `json:"token,omitempty" firestore:"token,omitempty"`
	Scopes []string `json:"scopes,omitempty" firestore:"scopes,omitempty"`
}

// Installation is one workspace's persisted authorization grant.
type Installation struct {
	Team                *Workspace `json:"team,omitempty" firestore:"team,omitempty"`
	Enterprise          *Workspace `json:"enterprise,omitempty" firestore:"enterprise,omitempty"`
	IsEnterpriseInstall bool       `json:"isEnterpriseInstall" firestore:"isEnterpriseInstall"`

	Bot  *Bot `json:"bot,omitempty" firestore:"bot,omitempty"`
	User User `json:"user" firestore:"user"`

	// Provenance, copied verbatim from the exchange response.
	AppID       string `json:"appId,omitempty" firestore:"appId,omitempty"`
	TokenType   string `json:"tokenType,omitempty" firestore:"tokenType,omitempty"`
	AuthVersion string `json:"authVersion,omitempty" firestore:"authVersion,omitempty"`
}

// Key resolves the storage key: enterprise id for enterprise-wide installs,
// team id otherwise. ok=false when the authoritative id is absent; callers
// must treat that as a hard failure, never default it.
func (i *Installation) Key() (string, bool) {
	if i.IsEnterpriseInstall {
		if i.Enterprise != nil && i.Enterprise.ID != "" {
			return i.Enterprise.ID, true
		}
		return "", false
	}
	if i.Team != nil && i.Team.ID != "" {
		return i.Team.ID, true
	}
	return "", false
}

// FromOAuthResponse maps a successful oauth.v2.access response into an
// Installation. It is an explicit, validated mapping: responses without the
// full bot grant are rejected with ErrIncomplete instead of stored partially.
func FromOAuthResponse(resp *slack.OAuthV2Response) (*Installation, error) {
	if resp == nil {
		return nil, ErrIncomplete
	}
	if resp.AccessToken == "" || resp.BotUserID == "" || resp.Scope == "" {
		return nil, ErrIncomplete
	}

	inst := &Installation{
		IsEnterpriseInstall: resp.IsEnterpriseInstall,
		Bot: &Bot{
			ID:     resp.BotUserID,
			UserID: resp.BotUserID,
			Token:  resp.AccessToken,
			Scopes: splitScopes(resp.Scope),
		},
		User: User{
			ID:     resp.AuthedUser.ID,
			Token:  resp.AuthedUser.AccessToken,
			Scopes: splitScopes(resp.AuthedUser.Scope),
		},
		AppID:       resp.AppID,
		TokenType:   resp.TokenType,
		AuthVersion: "v2",
	}

	if resp.Team != nil && resp.Team.ID != "" {
		inst.Team = &Workspace{ID: resp.Team.ID, Name: resp.Team.Name}
	}
	if resp.Enterprise != nil && resp.Enterprise.ID != "" {
		inst.Enterprise = &Workspace{ID: resp.Enterprise.ID, Name: resp.Enterprise.Name}
	}

	return inst, nil
}

// splitScopes parsea el formato de Slack (coma-separado). Retorna nil para
// vacío, así el campo se omite en la serialización.
func splitScopes(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
