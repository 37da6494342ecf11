package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	goslack "github.com/slack-go/slack"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/clients"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func TestSlackSuite(t *testing.T) {
	suite.Run(t, new(SlackSuite))
}

type SlackSuite struct {
	suite.Suite

	ctx     context.Context
	clients *clients.MockFactory
	server  *httptest.Server
	skills  *registry.Registry
	sctx    types.SkillExecutionContext

	mu        sync.Mutex
	responses map[string]string
	calls     map[string]url.Values
}

func (suite *SlackSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clients = clients.NewMockFactory(gomock.NewController(suite.T()))
	suite.responses = map[string]string{}
	suite.calls = map[string]url.Values{}

	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		method := strings.TrimPrefix(r.URL.Path, "/")

		suite.mu.Lock()
		suite.calls[method] = r.Form
		body, ok := suite.responses[method]
		suite.mu.Unlock()

		if !ok {
			body = `{"ok":false,"error":"unknown_method"}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	suite.T().Cleanup(suite.server.Close)

	client := goslack.New("xoxb-test", goslack.OptionAPIURL(suite.server.URL+"/"))
	suite.clients.EXPECT().Slack(gomock.Any(), "int_slack").Return(client, nil).AnyTimes()
	suite.clients.EXPECT().SlackUser(gomock.Any(), "int_slack").Return(client, nil).AnyTimes()

	reg, err := registry.NewBuilder().AddAll(New(suite.clients).Entries()).Build()
	suite.Require().NoError(err)
	suite.skills = reg

	suite.sctx = types.SkillExecutionContext{IntegrationID: "int_slack", ChatbotID: "bot_1"}
}

func (suite *SlackSuite) respond(method string, body any) {
	bts, err := json.Marshal(body)
	suite.Require().NoError(err)
	suite.responses[method] = string(bts)
}

func (suite *SlackSuite) call(name string, p map[string]any) (map[string]any, error) {
	handler, ok := suite.skills.Lookup(name)
	suite.Require().True(ok, name)

	out, err := handler(suite.ctx, p, suite.sctx)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func (suite *SlackSuite) TestRequiresIntegration() {
	handler, _ := suite.skills.Lookup(SkillSendMessage)
	_, err := handler(suite.ctx, map[string]any{"message": "hi"}, types.SkillExecutionContext{})
	suite.ErrorIs(err, ErrIntegrationRequired)
}

func (suite *SlackSuite) TestSendMessageToChannelName() {
	suite.respond("chat.postMessage", map[string]any{"ok": true, "channel": "C1", "ts": "1700000000.000100"})
	suite.respond("chat.getPermalink", map[string]any{"ok": true, "channel": "C1", "permalink": "https://acme.slack.com/archives/C1/p1"})

	out, err := suite.call(SkillSendMessage, map[string]any{
		"message":      "Hello from Syllabi!",
		"channel_name": "#general",
		"thread_ts":    "1699999999.000001",
	})
	suite.Require().NoError(err)

	suite.Equal("C1", out["channel"])
	suite.Equal("1700000000.000100", out["message_ts"])
	suite.Equal("https://acme.slack.com/archives/C1/p1", out["permalink"])

	sent := suite.calls["chat.postMessage"]
	suite.Equal("#general", sent.Get("channel"))
	suite.Equal("Hello from Syllabi!", sent.Get("text"))
	suite.Equal("1699999999.000001", sent.Get("thread_ts"))
}

func (suite *SlackSuite) TestSendMessageOpensDirectMessage() {
	suite.respond("conversations.open", map[string]any{"ok": true, "channel": map[string]any{"id": "D42"}})
	suite.respond("chat.postMessage", map[string]any{"ok": true, "channel": "D42", "ts": "1.2"})

	out, err := suite.call(SkillSendMessage, map[string]any{
		"message":  "ping",
		"user_ids": []any{"U1", "U2"},
	})
	suite.Require().NoError(err)
	suite.Equal("D42", out["channel"])
	suite.Equal("U1,U2", suite.calls["conversations.open"].Get("users"))
	suite.Equal("D42", suite.calls["chat.postMessage"].Get("channel"))
}

func (suite *SlackSuite) TestSendMessageNeedsTarget() {
	_, err := suite.call(SkillSendMessage, map[string]any{"message": "ping"})
	suite.ErrorContains(err, "Must provide conversation_id, channel_name, user_ids or emails")
}

func (suite *SlackSuite) TestErrorRewriting() {
	for code, want := range map[string]string{
		"channel_not_found": "Channel not found. Please check the channel name or ID.",
		"not_in_channel":    "Bot is not a member of this channel. Please invite the bot to the channel first.",
		"invalid_auth":      "Invalid Slack authentication. Please reconnect your Slack integration.",
		"rate_limited":      "Rate limited by Slack. Please try again in a moment.",
	} {
		suite.respond("chat.postMessage", map[string]any{"ok": false, "error": code})

		_, err := suite.call(SkillSendMessage, map[string]any{"message": "hi", "conversation_id": "C1"})
		suite.EqualError(err, want, code)
	}
}

func (suite *SlackSuite) TestListUsersExcludesBots() {
	suite.respond("users.list", map[string]any{
		"ok": true,
		"members": []map[string]any{
			{"id": "U1", "name": "alice", "real_name": "Alice", "profile": map[string]any{"email": "alice@example.com"}},
			{"id": "B1", "name": "deploybot", "is_bot": true},
			{"id": "U2", "name": "gone", "deleted": true},
		},
	})

	out, err := suite.call(SkillListUsers, map[string]any{})
	suite.Require().NoError(err)
	suite.Equal(1, out["total_count"])

	users := out["users"].([]map[string]any)
	suite.Equal("alice@example.com", users[0]["email"])
}

func (suite *SlackSuite) TestGetMessagesResolvesChannelName() {
	suite.respond("conversations.list", map[string]any{
		"ok":       true,
		"channels": []map[string]any{{"id": "C9", "name": "random"}, {"id": "C7", "name": "general"}},
	})
	suite.respond("conversations.history", map[string]any{
		"ok":       true,
		"has_more": false,
		"messages": []map[string]any{{"type": "message", "user": "U1", "text": "hello", "ts": "1704067200.000000"}},
	})

	out, err := suite.call(SkillGetMessages, map[string]any{
		"channel_name":    "#general",
		"oldest_datetime": "2024-01-01 00:00:00",
		"limit":           5,
	})
	suite.Require().NoError(err)

	suite.Equal("C7", out["channel"])
	history := suite.calls["conversations.history"]
	suite.Equal("C7", history.Get("channel"))
	suite.Equal("1704067200", history.Get("oldest"))
	suite.Equal("5", history.Get("limit"))

	messages := out["messages"].([]map[string]any)
	suite.Require().Len(messages, 1)
	suite.Equal("2024-01-01T00:00:00Z", messages[0]["timestamp"])
}

func (suite *SlackSuite) TestGetMessagesUnknownChannel() {
	suite.respond("conversations.list", map[string]any{"ok": true, "channels": []map[string]any{}})

	_, err := suite.call(SkillGetMessages, map[string]any{"channel_name": "nowhere"})
	suite.ErrorContains(err, "Channel #nowhere not found")
}

func (suite *SlackSuite) TestCreateReminderValidation() {
	_, err := suite.call(SkillCreateReminder, map[string]any{"text": "standup"})
	suite.ErrorContains(err, "time is required")
}

func (suite *SlackSuite) TestGetRemindersSkipsCompleted() {
	suite.respond("reminders.list", map[string]any{
		"ok": true,
		"reminders": []map[string]any{
			{"id": "Rm1", "text": "pay invoices", "time": 1704067200},
			{"id": "Rm2", "text": "done already", "complete_ts": 1},
		},
	})

	out, err := suite.call(SkillGetReminders, nil)
	suite.Require().NoError(err)
	suite.Equal(1, out["total_count"])
}

func TestSlackTimestamp(t *testing.T) {
	for in, want := range map[string]string{
		"":                     "",
		"2024-01-01 00:00:00":  "1704067200",
		"2024-01-01":           "1704067200",
		"2024-01-01T00:00:00Z": "1704067200",
	} {
		got, err := slackTimestamp(in)
		if err != nil || got != want {
			t.Errorf("slackTimestamp(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := slackTimestamp("next tuesday"); err == nil {
		t.Error("expected error for free text")
	}
}

func TestDefinitionsMatchHandlers(t *testing.T) {
	entries := New(nil).Entries()
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name] = true
	}

	defs := Definitions()
	if len(defs) != len(entries) {
		t.Fatalf("%d definitions, %d handlers", len(defs), len(entries))
	}
	for _, d := range defs {
		if !names[d.Name] {
			t.Errorf("definition %s has no handler", d.Name)
		}
	}
}
