package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

type FactorySuite struct {
	suite.Suite

	ctx     context.Context
	store   *store.MockStore
	server  *httptest.Server
	factory *StoreFactory

	lastRequest *http.Request
	lastToken   string
}

func (suite *FactorySuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = store.NewMockStore(gomock.NewController(suite.T()))

	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.lastRequest = r
		// slack sends the token as a form field
		suite.lastToken = r.FormValue("token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"url":"https://acme.slack.com/","team":"Acme","user":"syllabi","team_id":"T1","user_id":"U1","object":"user","id":"u-1"}`))
	}))
	suite.T().Cleanup(suite.server.Close)

	cfg := config.ServerConfig{
		Slack:  config.Slack{APIURL: suite.server.URL + "/"},
		Notion: config.Notion{APIURL: suite.server.URL, Version: "2022-06-28"},
	}
	suite.factory = NewStoreFactory(suite.store, cfg)
	suite.factory.httpClient = suite.server.Client()
}

func (suite *FactorySuite) expectIntegration(integration *types.Integration) {
	suite.store.EXPECT().GetIntegration(gomock.Any(), integration.ID).Return(integration, nil)
}

func (suite *FactorySuite) TestEmptyIntegrationID() {
	_, err := suite.factory.Slack(suite.ctx, "")
	suite.ErrorIs(err, ErrIntegrationRequired)
}

func (suite *FactorySuite) TestIntegrationNotFound() {
	suite.store.EXPECT().GetIntegration(gomock.Any(), "int_missing").Return(nil, store.ErrNotFound)

	_, err := suite.factory.Notion(suite.ctx, "int_missing")
	suite.EqualError(err, "notion integration int_missing not found")
}

func (suite *FactorySuite) TestWrongType() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_1",
		IntegrationType: types.IntegrationTypeGoogle,
		IsActive:        true,
	})

	_, err := suite.factory.Slack(suite.ctx, "int_1")
	suite.ErrorContains(err, "is a google integration, not slack")
}

func (suite *FactorySuite) TestInactive() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_1",
		IntegrationType: types.IntegrationTypeDiscord,
		IsActive:        false,
		Credentials:     types.IntegrationCredentials{BotToken: "bot"},
	})

	_, err := suite.factory.Discord(suite.ctx, "int_1")
	suite.ErrorContains(err, "is not active")
}

func (suite *FactorySuite) TestSlackUsesBotToken() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_slack",
		IntegrationType: types.IntegrationTypeSlack,
		IsActive:        true,
		Credentials:     types.IntegrationCredentials{BotToken: "xoxb-bot", AccessToken: "xoxp-user"},
	})

	client, err := suite.factory.Slack(suite.ctx, "int_slack")
	suite.Require().NoError(err)

	resp, err := client.AuthTestContext(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("Acme", resp.Team)
	suite.Equal("xoxb-bot", suite.lastToken)
}

func (suite *FactorySuite) TestSlackUserPrefersAccessToken() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_slack",
		IntegrationType: types.IntegrationTypeSlack,
		IsActive:        true,
		Credentials:     types.IntegrationCredentials{BotToken: "xoxb-bot", AccessToken: "xoxp-user"},
	})

	client, err := suite.factory.SlackUser(suite.ctx, "int_slack")
	suite.Require().NoError(err)

	_, err = client.AuthTestContext(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("xoxp-user", suite.lastToken)
}

func (suite *FactorySuite) TestSlackWithoutToken() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_slack",
		IntegrationType: types.IntegrationTypeSlack,
		IsActive:        true,
	})

	_, err := suite.factory.Slack(suite.ctx, "int_slack")
	suite.ErrorContains(err, "has no token")
}

func (suite *FactorySuite) TestNotionHeaders() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_notion",
		IntegrationType: types.IntegrationTypeNotion,
		IsActive:        true,
		Credentials:     types.IntegrationCredentials{AccessToken: "secret_abc"},
	})

	client, err := suite.factory.Notion(suite.ctx, "int_notion")
	suite.Require().NoError(err)

	resp, err := client.R().SetContext(suite.ctx).Get("/users/me")
	suite.Require().NoError(err)
	suite.False(resp.IsError())
	suite.Equal("Bearer secret_abc", suite.lastRequest.Header.Get("Authorization"))
	suite.Equal("2022-06-28", suite.lastRequest.Header.Get("Notion-Version"))
}

func (suite *FactorySuite) TestGoogleRequiresToken() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_google",
		IntegrationType: types.IntegrationTypeGoogle,
		IsActive:        true,
	})

	_, err := suite.factory.Google(suite.ctx, "int_google")
	suite.ErrorContains(err, "has no token")
}

func (suite *FactorySuite) TestGoogleAttachesAccessToken() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_google",
		IntegrationType: types.IntegrationTypeGoogle,
		IsActive:        true,
		Credentials:     types.IntegrationCredentials{AccessToken: "ya29.token", TokenType: "Bearer"},
	})

	client, err := suite.factory.Google(suite.ctx, "int_google")
	suite.Require().NoError(err)

	resp, err := client.Get(suite.server.URL + "/gmail/v1/users/me/profile")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal("Bearer ya29.token", suite.lastRequest.Header.Get("Authorization"))
}

func (suite *FactorySuite) TestDiscordGuildFromMetadata() {
	suite.expectIntegration(&types.Integration{
		ID:              "int_discord",
		IntegrationType: types.IntegrationTypeDiscord,
		IsActive:        true,
		Metadata:        map[string]any{"guild_id": "g_1", "guild_name": "Acme"},
		Credentials:     types.IntegrationCredentials{BotToken: "bot-token"},
	})

	bot, err := suite.factory.Discord(suite.ctx, "int_discord")
	suite.Require().NoError(err)
	suite.Equal("g_1", bot.GuildID)
	suite.Equal("Bot bot-token", bot.Token)
}
