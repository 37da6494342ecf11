package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// CreateIntegrationRequest carries the credentials an OAuth callback obtained.
// They are stored but never returned.
type CreateIntegrationRequest struct {
	UserID          string                       `json:"user_id"`
	IntegrationType types.IntegrationType        `json:"integration_type"`
	WorkspaceName   string                       `json:"workspace_name"`
	Metadata        map[string]any               `json:"metadata"`
	Credentials     types.IntegrationCredentials `json:"credentials"`
}

type BindIntegrationRequest struct {
	IntegrationID string `json:"integration_id"`
}

// createIntegration godoc
// @Summary Store a connected third-party account
// @Tags    integrations
// @Param   request body CreateIntegrationRequest true "Account and credentials"
// @Success 201 {object} types.Integration
// @Router /api/v1/integrations [post]
func (apiServer *SyllabiAPIServer) createIntegration(rw http.ResponseWriter, r *http.Request) (*types.Integration, *system.HTTPError) {
	var req CreateIntegrationRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}

	if req.UserID == "" {
		return nil, system.NewHTTPError400("user_id is required")
	}
	switch req.IntegrationType {
	case types.IntegrationTypeSlack, types.IntegrationTypeDiscord, types.IntegrationTypeGoogle, types.IntegrationTypeNotion:
	default:
		return nil, system.NewHTTPError400("unsupported integration type " + string(req.IntegrationType))
	}

	creds := req.Credentials
	if creds.AccessToken == "" && creds.RefreshToken == "" && creds.BotToken == "" {
		return nil, system.NewHTTPError400("credentials must contain a token")
	}

	integration, err := apiServer.Store.CreateIntegration(r.Context(), &types.Integration{
		UserID:          req.UserID,
		IntegrationType: req.IntegrationType,
		WorkspaceName:   req.WorkspaceName,
		Metadata:        req.Metadata,
		Credentials:     creds,
		IsActive:        true,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create integration")
		return nil, system.NewHTTPError500("failed to create integration")
	}

	writeCreated(rw, system.GetAPIPath("/integrations/"+integration.ID))
	return integration, nil
}

// bindChatbotIntegration godoc
// @Summary Make a connected account available to a chatbot's integration skills
// @Tags    chatbots
// @Param   request body BindIntegrationRequest true "Integration to bind"
// @Success 201 {object} types.ChatbotIntegration
// @Router /api/v1/chatbots/{chatbot_id}/integrations [post]
func (apiServer *SyllabiAPIServer) bindChatbotIntegration(rw http.ResponseWriter, r *http.Request) (*types.ChatbotIntegration, *system.HTTPError) {
	chatbotID := mux.Vars(r)["chatbot_id"]

	var req BindIntegrationRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}
	if req.IntegrationID == "" {
		return nil, system.NewHTTPError400("integration_id is required")
	}

	integration, err := apiServer.Store.GetIntegration(r.Context(), req.IntegrationID)
	if err != nil {
		return nil, storeError(err, "integration not found")
	}

	binding, err := apiServer.Store.CreateChatbotIntegration(r.Context(), &types.ChatbotIntegration{
		ChatbotID:       chatbotID,
		IntegrationID:   integration.ID,
		IntegrationType: integration.IntegrationType,
		IsActive:        true,
	})
	if err != nil {
		return nil, system.NewHTTPError(err)
	}

	writeCreated(rw, system.GetAPIPath("/chatbots/"+chatbotID+"/integrations/"+binding.ID))
	return binding, nil
}
