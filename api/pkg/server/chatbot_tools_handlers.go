package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/tools"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

type ChatbotToolsResponse struct {
	Selection types.ToolSelectionConfig `json:"selection"`
	Tools     []openai.Tool             `json:"tools"`
}

// listChatbotTools godoc
// @Summary List the tools exposed to the model for one chat turn
// @Tags    tools
// @Param   chatbot_id      path  string false "Chatbot ID"
// @Param   method          query string false "direct or semantic_retrieval, picked automatically when empty"
// @Param   max_tools       query int    false "Maximum number of tools"
// @Param   q               query string false "User message used for semantic retrieval"
// @Param   chat_session_id query string false "Chat session the tools are bound to"
// @Success 200 {object} ChatbotToolsResponse
// @Router /api/v1/chatbots/{chatbot_id}/tools [get]
func (apiServer *SyllabiAPIServer) listChatbotTools(_ http.ResponseWriter, r *http.Request) (*ChatbotToolsResponse, *system.HTTPError) {
	ctx := r.Context()
	chatbotID := mux.Vars(r)["chatbot_id"]
	query := r.URL.Query()

	method := types.ToolSelectionMethod(query.Get("method"))
	switch method {
	case "", types.ToolSelectionMethodDirect, types.ToolSelectionMethodSemantic:
	default:
		return nil, system.NewHTTPError400("method must be one of direct or semantic_retrieval")
	}

	selection := apiServer.Selector.GetOptimalToolSelectionConfig(ctx, chatbotID, method, query.Get("q"))

	maxTools, httpErr := queryInt(r, "max_tools", selection.MaxTools)
	if httpErr != nil {
		return nil, httpErr
	}
	selection.MaxTools = maxTools

	available := apiServer.Selector.GetSkillsAsTools(ctx, chatbotID, types.SkillExecutionContext{
		ChatbotID:     chatbotID,
		ChatSessionID: query.Get("chat_session_id"),
		UserID:        query.Get("user_id"),
		Channel:       types.Channel(query.Get("channel")),
	}, selection)

	return &ChatbotToolsResponse{
		Selection: selection,
		Tools:     tools.OpenAITools(available),
	}, nil
}

type ExecuteSkillRequest struct {
	Parameters    map[string]any `json:"parameters"`
	ChatSessionID string         `json:"chat_session_id"`
	UserID        string         `json:"user_id"`
	Channel       types.Channel  `json:"channel"`
	TestMode      bool           `json:"test_mode"`
}

// executeChatbotSkill godoc
// @Summary Execute a skill bound to a chatbot
// @Description Failures of the skill itself are reported in the result envelope with status 200.
// @Tags    skills
// @Param   request body ExecuteSkillRequest true "Execution request"
// @Success 200 {object} types.SkillExecutionResult
// @Router /api/v1/chatbots/{chatbot_id}/skills/{skill_id}/execute [post]
func (apiServer *SyllabiAPIServer) executeChatbotSkill(_ http.ResponseWriter, r *http.Request) (*types.SkillExecutionResult, *system.HTTPError) {
	ctx := r.Context()
	vars := mux.Vars(r)
	chatbotID, skillID := vars["chatbot_id"], vars["skill_id"]

	var req ExecuteSkillRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}

	skill, err := apiServer.Store.GetChatbotSkill(ctx, chatbotID, skillID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, system.NewHTTPError404("skill is not configured for this chatbot")
		}
		return nil, system.NewHTTPError500(err.Error())
	}

	result := apiServer.Executor.ExecuteSkill(ctx, skill, req.Parameters, types.SkillExecutionContext{
		SkillID:       skill.Skill.ID,
		ChatSessionID: strings.TrimSpace(req.ChatSessionID),
		UserID:        req.UserID,
		ChatbotID:     chatbotID,
		Channel:       req.Channel,
		TestMode:      req.TestMode,
	})
	return &result, nil
}
