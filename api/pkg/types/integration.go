package types

import (
	"time"
)

type IntegrationType string

const (
	IntegrationTypeSlack   IntegrationType = "slack"
	IntegrationTypeDiscord IntegrationType = "discord"
	IntegrationTypeGoogle  IntegrationType = "google"
	IntegrationTypeNotion  IntegrationType = "notion"
)

// Integration is a connected, authenticated third-party account (one Slack
// workspace, one Google account and so on)
type Integration struct {
	ID              string                 `json:"id" gorm:"primaryKey"`
	UserID          string                 `json:"user_id" gorm:"not null;index"`
	IntegrationType IntegrationType        `json:"integration_type" gorm:"not null;type:text;index"`
	WorkspaceName   string                 `json:"workspace_name"`
	Metadata        map[string]any         `json:"metadata" gorm:"type:jsonb;serializer:json"`
	Credentials     IntegrationCredentials `json:"-" gorm:"type:jsonb;serializer:json"`
	IsActive        bool                   `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time              `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Integration) TableName() string {
	return "connected_integrations"
}

// DisplayName picks the human readable workspace name from the provider metadata
func (i *Integration) DisplayName() string {
	for _, key := range []string{"team_name", "guild_name", "workspace_name"} {
		if v, ok := i.Metadata[key].(string); ok && v != "" {
			return v
		}
	}
	if i.WorkspaceName != "" {
		return i.WorkspaceName
	}
	return i.ID
}

type IntegrationCredentials struct {
	AccessToken  string     `json:"access_token,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	BotToken     string     `json:"bot_token,omitempty"`
	TokenType    string     `json:"token_type,omitempty"`
	Expiry       *time.Time `json:"expiry,omitempty"`
	Scopes       []string   `json:"scopes,omitempty"`
}

// ChatbotIntegration binds a connected integration to a chatbot
type ChatbotIntegration struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	ChatbotID       string          `json:"chatbot_id" gorm:"not null;index"`
	IntegrationID   string          `json:"integration_id" gorm:"not null;index"`
	IntegrationType IntegrationType `json:"integration_type" gorm:"not null;type:text"`
	IsActive        bool            `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`

	Integration *Integration `json:"integration,omitempty" gorm:"foreignKey:IntegrationID"`
}
