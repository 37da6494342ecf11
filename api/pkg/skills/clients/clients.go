// Package clients builds authenticated provider clients for connected
// integrations.
package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var ErrIntegrationRequired = errors.New("integration ID is required")

//go:generate mockgen -source $GOFILE -destination clients_mocks.go -package $GOPACKAGE

// Factory returns a client authenticated as the given integration. Every
// method fails when the integration is missing, inactive or of another type.
type Factory interface {
	Slack(ctx context.Context, integrationID string) (*slack.Client, error)
	// SlackUser acts as the installing user, needed for status and reminders
	SlackUser(ctx context.Context, integrationID string) (*slack.Client, error)
	Discord(ctx context.Context, integrationID string) (*DiscordBot, error)
	Google(ctx context.Context, integrationID string) (*http.Client, error)
	Notion(ctx context.Context, integrationID string) (*resty.Client, error)
}

type StoreFactory struct {
	store store.Store
	cfg   config.ServerConfig
	// httpClient overrides the transport of every provider client
	httpClient *http.Client
}

var _ Factory = &StoreFactory{}

func NewStoreFactory(store store.Store, cfg config.ServerConfig) *StoreFactory {
	return &StoreFactory{
		store: store,
		cfg:   cfg,
	}
}

func (f *StoreFactory) integration(ctx context.Context, integrationID string, integrationType types.IntegrationType) (*types.Integration, error) {
	if integrationID == "" {
		return nil, ErrIntegrationRequired
	}

	integration, err := f.store.GetIntegration(ctx, integrationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%s integration %s not found", integrationType, integrationID)
		}
		return nil, fmt.Errorf("failed to get integration %s: %w", integrationID, err)
	}
	if integration.IntegrationType != integrationType {
		return nil, fmt.Errorf("integration %s is a %s integration, not %s", integrationID, integration.IntegrationType, integrationType)
	}
	if !integration.IsActive {
		return nil, fmt.Errorf("%s integration %s is not active, reconnect it in the chatbot settings", integrationType, integrationID)
	}

	return integration, nil
}

func (f *StoreFactory) Slack(ctx context.Context, integrationID string) (*slack.Client, error) {
	return f.slack(ctx, integrationID, false)
}

func (f *StoreFactory) SlackUser(ctx context.Context, integrationID string) (*slack.Client, error) {
	return f.slack(ctx, integrationID, true)
}

func (f *StoreFactory) slack(ctx context.Context, integrationID string, asUser bool) (*slack.Client, error) {
	integration, err := f.integration(ctx, integrationID, types.IntegrationTypeSlack)
	if err != nil {
		return nil, err
	}

	creds := integration.Credentials
	tokens := []string{creds.BotToken, creds.AccessToken}
	if asUser {
		tokens = []string{creds.AccessToken, creds.BotToken}
	}

	var token string
	for _, t := range tokens {
		if t != "" {
			token = t
			break
		}
	}
	if token == "" {
		return nil, fmt.Errorf("slack integration %s has no token", integrationID)
	}

	opts := []slack.Option{slack.OptionAPIURL(f.cfg.Slack.APIURL)}
	if f.httpClient != nil {
		opts = append(opts, slack.OptionHTTPClient(f.httpClient))
	}
	return slack.New(token, opts...), nil
}

// DiscordBot is a bot session plus the guild the bot was installed in
type DiscordBot struct {
	*discordgo.Session
	GuildID string
}

func (f *StoreFactory) Discord(ctx context.Context, integrationID string) (*DiscordBot, error) {
	integration, err := f.integration(ctx, integrationID, types.IntegrationTypeDiscord)
	if err != nil {
		return nil, err
	}

	if integration.Credentials.BotToken == "" {
		return nil, fmt.Errorf("discord integration %s has no bot token", integrationID)
	}

	session, err := discordgo.New("Bot " + integration.Credentials.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	// a tool call should fail fast rather than sleep out the rate limit
	session.ShouldRetryOnRateLimit = false
	if f.httpClient != nil {
		session.Client = f.httpClient
	}

	guildID, _ := integration.Metadata["guild_id"].(string)
	return &DiscordBot{Session: session, GuildID: guildID}, nil
}

// Google returns an http.Client that refreshes the integration's OAuth token
// and retries transient failures
func (f *StoreFactory) Google(ctx context.Context, integrationID string) (*http.Client, error) {
	integration, err := f.integration(ctx, integrationID, types.IntegrationTypeGoogle)
	if err != nil {
		return nil, err
	}

	creds := integration.Credentials
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return nil, fmt.Errorf("google integration %s has no token", integrationID)
	}

	conf := &oauth2.Config{
		ClientID:     f.cfg.Google.ClientID,
		ClientSecret: f.cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       creds.Scopes,
	}
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    creds.TokenType,
	}
	if creds.Expiry != nil {
		token.Expiry = *creds.Expiry
	}

	base := f.httpClient
	if base == nil {
		// gmail sends and calendar inserts must not be replayed on a 5xx
		base = system.IdempotentOnly(system.NewRetryClient(f.cfg.Google.RetryMax))
	}

	log.Ctx(ctx).Debug().
		Str("integration_id", integrationID).
		Bool("expired", !token.Valid()).
		Msg("building google client")

	return conf.Client(context.WithValue(ctx, oauth2.HTTPClient, base), token), nil
}

func (f *StoreFactory) Notion(ctx context.Context, integrationID string) (*resty.Client, error) {
	integration, err := f.integration(ctx, integrationID, types.IntegrationTypeNotion)
	if err != nil {
		return nil, err
	}

	if integration.Credentials.AccessToken == "" {
		return nil, fmt.Errorf("notion integration %s has no token", integrationID)
	}

	var client *resty.Client
	if f.httpClient != nil {
		client = resty.NewWithClient(f.httpClient)
	} else {
		client = resty.New()
	}

	return client.
		SetBaseURL(f.cfg.Notion.APIURL).
		SetAuthToken(integration.Credentials.AccessToken).
		SetHeader("Notion-Version", f.cfg.Notion.Version).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2), nil
}
