package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/tools"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

type ServerSuite struct {
	suite.Suite

	store    *store.MockStore
	searcher *tools.MockSkillSearcher
	executor *tools.MockSkillExecutor

	router *mux.Router
}

func (suite *ServerSuite) SetupTest() {
	ctrl := gomock.NewController(suite.T())
	suite.store = store.NewMockStore(ctrl)
	suite.searcher = tools.NewMockSkillSearcher(ctrl)
	suite.executor = tools.NewMockSkillExecutor(ctrl)

	server, err := NewServer(
		config.WebServer{Host: "127.0.0.1", Port: 8080},
		suite.store,
		suite.executor,
		tools.NewSelector(suite.store, suite.searcher, suite.executor),
	)
	suite.Require().NoError(err)
	suite.router = server.registerRoutes()
}

func (suite *ServerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func skill(name string) *types.ChatbotSkill {
	return &types.ChatbotSkill{
		Skill: types.Skill{
			ID:          "skl_" + name,
			Name:        name,
			Type:        types.SkillTypeBuiltin,
			DisplayName: name,
			Description: "Runs " + name,
			IsActive:    true,
			FunctionSchema: types.FunctionSchema{
				Name:        name,
				Description: "Runs " + name,
				Parameters: schema.Object(map[string]*types.ParameterSchema{
					"channel": schema.String("Channel to post to"),
					"text":    schema.String("Message text"),
				}, "channel", "text"),
			},
		},
		Association: types.SkillAssociation{ChatbotID: "bot_1", SkillID: "skl_" + name, IsActive: true},
	}
}

func (suite *ServerSuite) decodeTools(rec *httptest.ResponseRecorder) (types.ToolSelectionConfig, []string) {
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp ChatbotToolsResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))

	var names []string
	for _, tool := range resp.Tools {
		names = append(names, tool.Function.Name)
	}
	return resp.Selection, names
}

func (suite *ServerSuite) TestHealthz() {
	rec := suite.do(http.MethodGet, "/healthz", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (suite *ServerSuite) TestListToolsDirect() {
	suite.store.EXPECT().GetActiveSkillsForChatbot(gomock.Any(), "bot_1").Return([]*types.ChatbotSkill{
		skill("slack_send_message"),
		skill("calculate"),
	}, nil)

	selection, names := suite.decodeTools(suite.do(http.MethodGet, "/api/v1/chatbots/bot_1/tools?method=direct", ""))
	suite.Equal(types.ToolSelectionMethodDirect, selection.Method)
	suite.Equal(100, selection.MaxTools)
	suite.Equal([]string{"calculate", "slack_send_message"}, names)
}

func (suite *ServerSuite) TestListToolsPicksSemanticForLargeChatbots() {
	suite.store.EXPECT().CountActiveSkillsForChatbot(gomock.Any(), "bot_1").Return(int64(40), nil)
	suite.searcher.EXPECT().SearchChatbotSkills(gomock.Any(), "post to slack", "bot_1", 3).
		Return([]*types.ChatbotSkill{skill("slack_send_message")}, nil)

	selection, names := suite.decodeTools(suite.do(http.MethodGet, "/api/v1/chatbots/bot_1/tools?q=post+to+slack&max_tools=3", ""))
	suite.Equal(types.ToolSelectionConfig{
		Method:        types.ToolSelectionMethodSemantic,
		MaxTools:      3,
		SemanticQuery: "post to slack",
	}, selection)
	suite.Equal([]string{"slack_send_message"}, names)
}

func (suite *ServerSuite) TestListToolsEmpty() {
	suite.store.EXPECT().GetActiveSkillsForChatbot(gomock.Any(), "bot_1").Return(nil, errors.New("db down"))

	rec := suite.do(http.MethodGet, "/api/v1/chatbots/bot_1/tools?method=direct", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"tools":[]`)
}

func (suite *ServerSuite) TestListToolsBadRequest() {
	rec := suite.do(http.MethodGet, "/api/v1/chatbots/bot_1/tools?method=psychic", "")
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/chatbots/bot_1/tools?method=direct&max_tools=lots", "")
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerSuite) TestExecuteSkill() {
	target := skill("slack_send_message")
	suite.store.EXPECT().GetChatbotSkill(gomock.Any(), "bot_1", "skl_slack_send_message").Return(target, nil)
	suite.executor.EXPECT().ExecuteSkill(gomock.Any(), target, map[string]any{"channel": "general", "text": "hi"}, types.SkillExecutionContext{
		SkillID:       "skl_slack_send_message",
		ChatSessionID: "ses_1",
		ChatbotID:     "bot_1",
		Channel:       types.ChannelSlack,
		TestMode:      true,
	}).Return(types.SuccessResult(map[string]any{"ts": "1700000000.000100"}))

	rec := suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills/skl_slack_send_message/execute",
		`{"parameters":{"channel":"general","text":"hi"},"chat_session_id":"ses_1","channel":"slack","test_mode":true}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"success":true,"data":{"ts":"1700000000.000100"}}`, rec.Body.String())
}

func (suite *ServerSuite) TestExecuteSkillFailureIsNotAnHTTPError() {
	suite.store.EXPECT().GetChatbotSkill(gomock.Any(), "bot_1", "skl_x").Return(skill("x"), nil)
	suite.executor.EXPECT().ExecuteSkill(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(types.ErrorResult("HTTP 502: Bad Gateway"))

	rec := suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills/skl_x/execute", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"success":false,"error":"HTTP 502: Bad Gateway"}`, rec.Body.String())
}

func (suite *ServerSuite) TestExecuteSkillNotConfigured() {
	suite.store.EXPECT().GetChatbotSkill(gomock.Any(), "bot_1", "skl_missing").Return(nil, store.ErrNotFound)

	rec := suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills/skl_missing/execute", `{}`)
	suite.Equal(http.StatusNotFound, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills/skl_missing/execute", `{"parameters":`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerSuite) TestValidateParameters() {
	target := skill("slack_send_message").Skill
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_slack_send_message").Return(&target, nil)

	rec := suite.do(http.MethodPost, "/api/v1/skills/skl_slack_send_message/validate", `{"parameters":{"channel":"general"}}`)
	suite.Equal(http.StatusOK, rec.Code)

	var result schema.ValidationResult
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	suite.False(result.Valid)
	suite.Equal([]string{"Missing required parameter: text"}, result.Errors)
}

func (suite *ServerSuite) TestExample() {
	target := skill("slack_send_message").Skill
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_slack_send_message").Return(&target, nil)

	rec := suite.do(http.MethodGet, "/api/v1/skills/skl_slack_send_message/example", "")
	suite.Equal(http.StatusOK, rec.Code)

	var resp SkillExampleResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("slack_send_message", resp.Name)
	suite.Contains(resp.Parameters, "channel")
	suite.Contains(resp.Parameters, "text")

	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_missing").Return(nil, store.ErrNotFound)
	rec = suite.do(http.MethodGet, "/api/v1/skills/skl_missing/example", "")
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerSuite) TestListExecutions() {
	suite.store.EXPECT().ListSkillExecutions(gomock.Any(), &store.ListSkillExecutionsQuery{
		SkillID:   "skl_1",
		ChatbotID: "bot_1",
		Limit:     50,
	}).Return(nil, nil)

	rec := suite.do(http.MethodGet, "/api/v1/skills/skl_1/executions?chatbot_id=bot_1", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`[]`, rec.Body.String())

	suite.store.EXPECT().ListSkillExecutions(gomock.Any(), &store.ListSkillExecutionsQuery{
		SkillID: "skl_1",
		Offset:  10,
		Limit:   5,
	}).Return([]*types.SkillExecution{{ID: "sex_1", SkillID: "skl_1"}}, nil)

	rec = suite.do(http.MethodGet, "/api/v1/skills/skl_1/executions?offset=10&limit=5", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"id":"sex_1"`)
}

func (suite *ServerSuite) TestStats() {
	var window time.Time
	suite.store.EXPECT().GetSkillExecutionStats(gomock.Any(), "skl_1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, since time.Time) (*types.SkillExecutionStats, error) {
			window = since
			return &types.SkillExecutionStats{
				TotalExecutions:      4,
				SuccessfulExecutions: 3,
				FailedExecutions:     1,
				AverageExecutionMs:   120,
				SuccessRate:          75,
			}, nil
		},
	)

	rec := suite.do(http.MethodGet, "/api/v1/skills/skl_1/stats", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"success_rate":75`)
	suite.WithinDuration(time.Now().AddDate(0, 0, -7), window, time.Minute)

	suite.store.EXPECT().GetSkillExecutionStats(gomock.Any(), "skl_1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, since time.Time) (*types.SkillExecutionStats, error) {
			window = since
			return &types.SkillExecutionStats{}, nil
		},
	).Times(2)

	rec = suite.do(http.MethodGet, "/api/v1/skills/skl_1/stats?days=30", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.WithinDuration(time.Now().AddDate(0, 0, -30), window, time.Minute)

	rec = suite.do(http.MethodGet, "/api/v1/skills/skl_1/stats?days=0", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(window.IsZero())

	rec = suite.do(http.MethodGet, "/api/v1/skills/skl_1/stats?days=-1", "")
	suite.Equal(http.StatusBadRequest, rec.Code)

	suite.store.EXPECT().GetSkillExecutionStats(gomock.Any(), "skl_2", gomock.Any()).Return(nil, errors.New("db down"))
	rec = suite.do(http.MethodGet, "/api/v1/skills/skl_2/stats", "")
	suite.Equal(http.StatusInternalServerError, rec.Code)
}

func (suite *ServerSuite) TestRequestID() {
	rec := suite.do(http.MethodGet, "/healthz", "")
	suite.True(strings.HasPrefix(rec.Header().Get("X-Request-ID"), "req_"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	req.Header.Set("X-Request-ID", "req_from_gateway")
	rec = httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal("req_from_gateway", rec.Header().Get("X-Request-ID"))
}

const webhookSkillBody = `{
	"user_id": "usr_1",
	"name": "lookup_order",
	"display_name": "Lookup order",
	"description": "Find an order by number",
	"category": "commerce",
	"function_schema": {"name": "lookup_order", "description": "Find an order by number", "parameters": {"type": "object", "properties": {"number": {"type": "string"}}, "required": ["number"]}},
	"configuration": {"webhook_config": {"url": "https://shop.example.com/orders", "method": "GET"}}
}`

func customSkill(userID string) *types.Skill {
	return &types.Skill{
		ID:          "skl_custom",
		UserID:      userID,
		Name:        "lookup_order",
		Type:        types.SkillTypeCustom,
		DisplayName: "Lookup order",
		Description: "Find an order by number",
		IsActive:    true,
		FunctionSchema: types.FunctionSchema{
			Name:        "lookup_order",
			Description: "Find an order by number",
		},
		Configuration: map[string]any{"webhook_url": "https://shop.example.com/orders"},
	}
}

func (suite *ServerSuite) TestCreateSkill() {
	suite.store.EXPECT().IsSkillNameUnique(gomock.Any(), "usr_1", types.SkillTypeCustom, "lookup_order", "").Return(true, nil)
	suite.store.EXPECT().CreateSkill(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, skill *types.Skill) (*types.Skill, error) {
			suite.Equal(types.SkillTypeCustom, skill.Type)
			suite.True(skill.IsActive)
			suite.Equal("usr_1", skill.UserID)
			suite.True(skill.FunctionSchema.Parameters.IsRequired("number"))
			skill.ID = "skl_new"
			return skill, nil
		},
	)

	rec := suite.do(http.MethodPost, "/api/v1/skills", webhookSkillBody)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.Equal("/api/v1/skills/skl_new", rec.Header().Get("Location"))
	suite.Contains(rec.Body.String(), `"id":"skl_new"`)
}

func (suite *ServerSuite) TestCreateSkillNameTaken() {
	suite.store.EXPECT().IsSkillNameUnique(gomock.Any(), "usr_1", types.SkillTypeCustom, "lookup_order", "").Return(false, nil)

	rec := suite.do(http.MethodPost, "/api/v1/skills", webhookSkillBody)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "already exists")
}

func (suite *ServerSuite) TestCreateSkillRejectsBadInput() {
	cases := map[string]string{
		"no owner":        `{"name":"x","display_name":"X","description":"d","configuration":{"url":"https://a.test"}}`,
		"bad name":        `{"user_id":"usr_1","name":"look up","display_name":"X","description":"d","configuration":{"url":"https://a.test"}}`,
		"no description":  `{"user_id":"usr_1","name":"x","display_name":"X","configuration":{"url":"https://a.test"}}`,
		"no webhook":      `{"user_id":"usr_1","name":"x","display_name":"X","description":"d"}`,
		"bad method":      `{"user_id":"usr_1","name":"x","display_name":"X","description":"d","configuration":{"url":"https://a.test","method":"TRACE"}}`,
		"non object args": `{"user_id":"usr_1","name":"x","display_name":"X","description":"d","function_schema":{"parameters":{"type":"array"}},"configuration":{"url":"https://a.test"}}`,
	}

	for name, body := range cases {
		rec := suite.do(http.MethodPost, "/api/v1/skills", body)
		suite.Equal(http.StatusBadRequest, rec.Code, name)
	}
}

func (suite *ServerSuite) TestListSkills() {
	suite.store.EXPECT().ListSkills(gomock.Any(), &store.ListSkillsQuery{
		UserID:         "usr_1",
		IncludeBuiltin: true,
		Category:       "commerce",
	}).Return([]*types.Skill{customSkill("usr_1")}, nil)

	rec := suite.do(http.MethodGet, "/api/v1/skills?user_id=usr_1&category=commerce", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"name":"lookup_order"`)

	suite.store.EXPECT().ListSkills(gomock.Any(), &store.ListSkillsQuery{}).Return(nil, errors.New("db down"))
	rec = suite.do(http.MethodGet, "/api/v1/skills", "")
	suite.Equal(http.StatusInternalServerError, rec.Code)
}

func (suite *ServerSuite) TestGetSkillAccess() {
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_custom").Return(customSkill("usr_1"), nil).Times(2)

	rec := suite.do(http.MethodGet, "/api/v1/skills/skl_custom?user_id=usr_1", "")
	suite.Equal(http.StatusOK, rec.Code)

	rec = suite.do(http.MethodGet, "/api/v1/skills/skl_custom?user_id=usr_2", "")
	suite.Equal(http.StatusForbidden, rec.Code)
}

func (suite *ServerSuite) TestUpdateSkillDisables() {
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_custom").Return(customSkill("usr_1"), nil)
	suite.store.EXPECT().UpdateSkill(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, skill *types.Skill) (*types.Skill, error) {
			suite.False(skill.IsActive)
			suite.Equal("Order lookup", skill.DisplayName)
			suite.Equal("lookup_order", skill.Name)
			return skill, nil
		},
	)

	rec := suite.do(http.MethodPatch, "/api/v1/skills/skl_custom?user_id=usr_1", `{"is_active":false,"display_name":"Order lookup"}`)
	suite.Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.Contains(rec.Body.String(), `"is_active":false`)
}

func (suite *ServerSuite) TestUpdateSkillOwnership() {
	rec := suite.do(http.MethodPatch, "/api/v1/skills/skl_custom", `{"is_active":false}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_custom").Return(customSkill("usr_1"), nil)
	rec = suite.do(http.MethodPatch, "/api/v1/skills/skl_custom?user_id=usr_2", `{"is_active":false}`)
	suite.Equal(http.StatusForbidden, rec.Code)

	builtinSkill := skill("calculate").Skill
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_calculate").Return(&builtinSkill, nil)
	rec = suite.do(http.MethodDelete, "/api/v1/skills/skl_calculate?user_id=usr_1", "")
	suite.Equal(http.StatusForbidden, rec.Code)
}

func (suite *ServerSuite) TestDeleteSkill() {
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_custom").Return(customSkill("usr_1"), nil)
	suite.store.EXPECT().DeleteSkill(gomock.Any(), "skl_custom").Return(nil)

	rec := suite.do(http.MethodDelete, "/api/v1/skills/skl_custom?user_id=usr_1", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"message":"skill deleted"}`, rec.Body.String())
}

func (suite *ServerSuite) TestListChatbotSkills() {
	disabled := skill("calculate")
	disabled.Association.IsActive = false
	suite.store.EXPECT().ListChatbotSkills(gomock.Any(), "bot_1").Return([]*types.ChatbotSkill{disabled}, nil)

	rec := suite.do(http.MethodGet, "/api/v1/chatbots/bot_1/skills", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `"name":"calculate"`)
}

func (suite *ServerSuite) TestCreateSkillAssociation() {
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_custom").Return(customSkill("usr_1"), nil)
	suite.store.EXPECT().GetChatbotSkill(gomock.Any(), "bot_1", "skl_custom").Return(nil, store.ErrNotFound)
	suite.store.EXPECT().CreateSkillAssociation(gomock.Any(), &types.SkillAssociation{
		ChatbotID:    "bot_1",
		SkillID:      "skl_custom",
		IsActive:     true,
		CustomConfig: map[string]any{"webhook_config": map[string]any{"method": "POST"}},
	}).DoAndReturn(func(_ context.Context, association *types.SkillAssociation) (*types.SkillAssociation, error) {
		association.ID = "ska_1"
		return association, nil
	})

	rec := suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills",
		`{"skill_id":"skl_custom","user_id":"usr_1","custom_config":{"webhook_config":{"method":"POST"}}}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.Equal("/api/v1/chatbots/bot_1/skills/ska_1", rec.Header().Get("Location"))
}

func (suite *ServerSuite) TestCreateSkillAssociationRejected() {
	rec := suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills", `{}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_custom").Return(customSkill("usr_1"), nil)
	rec = suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills", `{"skill_id":"skl_custom","user_id":"usr_2"}`)
	suite.Equal(http.StatusForbidden, rec.Code)

	target := skill("calculate")
	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_calculate").Return(&target.Skill, nil)
	suite.store.EXPECT().GetChatbotSkill(gomock.Any(), "bot_1", "skl_calculate").Return(target, nil)
	rec = suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills", `{"skill_id":"skl_calculate","user_id":"usr_2"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "already associated")

	suite.store.EXPECT().GetSkill(gomock.Any(), "skl_missing").Return(nil, store.ErrNotFound)
	rec = suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/skills", `{"skill_id":"skl_missing"}`)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerSuite) TestUpdateSkillAssociation() {
	suite.store.EXPECT().GetSkillAssociation(gomock.Any(), "ska_1").Return(&types.SkillAssociation{
		ID: "ska_1", ChatbotID: "bot_1", SkillID: "skl_1", IsActive: true,
	}, nil)
	suite.store.EXPECT().UpdateSkillAssociation(gomock.Any(), &types.SkillAssociation{
		ID: "ska_1", ChatbotID: "bot_1", SkillID: "skl_1", IsActive: false,
	}).DoAndReturn(func(_ context.Context, association *types.SkillAssociation) (*types.SkillAssociation, error) {
		return association, nil
	})

	rec := suite.do(http.MethodPatch, "/api/v1/chatbots/bot_1/skills/ska_1", `{"is_active":false}`)
	suite.Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.Contains(rec.Body.String(), `"is_active":false`)
}

func (suite *ServerSuite) TestDeleteSkillAssociation() {
	suite.store.EXPECT().GetSkillAssociation(gomock.Any(), "ska_1").Return(&types.SkillAssociation{ID: "ska_1", ChatbotID: "bot_1"}, nil)
	suite.store.EXPECT().DeleteSkillAssociation(gomock.Any(), "ska_1").Return(nil)

	rec := suite.do(http.MethodDelete, "/api/v1/chatbots/bot_1/skills/ska_1", "")
	suite.Equal(http.StatusOK, rec.Code)

	suite.store.EXPECT().GetSkillAssociation(gomock.Any(), "ska_2").Return(&types.SkillAssociation{ID: "ska_2", ChatbotID: "bot_2"}, nil)
	rec = suite.do(http.MethodDelete, "/api/v1/chatbots/bot_1/skills/ska_2", "")
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerSuite) TestCreateIntegration() {
	suite.store.EXPECT().CreateIntegration(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, integration *types.Integration) (*types.Integration, error) {
			suite.Equal("xoxb-bot", integration.Credentials.BotToken)
			suite.True(integration.IsActive)
			integration.ID = "int_1"
			return integration, nil
		},
	)

	rec := suite.do(http.MethodPost, "/api/v1/integrations",
		`{"user_id":"usr_1","integration_type":"slack","workspace_name":"Acme","credentials":{"bot_token":"xoxb-bot"}}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.NotContains(rec.Body.String(), "xoxb-bot")

	rec = suite.do(http.MethodPost, "/api/v1/integrations", `{"user_id":"usr_1","integration_type":"teams","credentials":{"bot_token":"x"}}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/integrations", `{"user_id":"usr_1","integration_type":"slack"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerSuite) TestBindChatbotIntegration() {
	suite.store.EXPECT().GetIntegration(gomock.Any(), "int_1").Return(&types.Integration{
		ID: "int_1", IntegrationType: types.IntegrationTypeGoogle, IsActive: true,
	}, nil)
	suite.store.EXPECT().CreateChatbotIntegration(gomock.Any(), &types.ChatbotIntegration{
		ChatbotID:       "bot_1",
		IntegrationID:   "int_1",
		IntegrationType: types.IntegrationTypeGoogle,
		IsActive:        true,
	}).DoAndReturn(func(_ context.Context, binding *types.ChatbotIntegration) (*types.ChatbotIntegration, error) {
		binding.ID = "cbi_1"
		return binding, nil
	})

	rec := suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/integrations", `{"integration_id":"int_1"}`)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	suite.store.EXPECT().GetIntegration(gomock.Any(), "int_missing").Return(nil, store.ErrNotFound)
	rec = suite.do(http.MethodPost, "/api/v1/chatbots/bot_1/integrations", `{"integration_id":"int_missing"}`)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func TestNewServerRequiresDependencies(t *testing.T) {
	_, err := NewServer(config.WebServer{}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected an error for a missing port")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	executor := tools.NewMockSkillExecutor(ctrl)

	server, err := NewServer(config.WebServer{Host: "127.0.0.1", Port: 18931}, mockStore, executor,
		tools.NewSelector(mockStore, nil, executor))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := server.ListenAndServe(ctx); err != nil {
		t.Fatalf("expected a clean shutdown, got %v", err)
	}
}
