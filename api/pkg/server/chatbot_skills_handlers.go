package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

type CreateSkillAssociationRequest struct {
	SkillID string `json:"skill_id"`
	// UserID is the chatbot owner, custom skills of other users are denied
	UserID       string         `json:"user_id"`
	IsActive     *bool          `json:"is_active"`
	CustomConfig map[string]any `json:"custom_config"`
}

type UpdateSkillAssociationRequest struct {
	IsActive     *bool          `json:"is_active"`
	CustomConfig map[string]any `json:"custom_config"`
}

// listChatbotSkills godoc
// @Summary Every skill bound to the chatbot, including disabled ones
// @Tags    chatbots
// @Success 200 {array} types.ChatbotSkill
// @Router /api/v1/chatbots/{chatbot_id}/skills [get]
func (apiServer *SyllabiAPIServer) listChatbotSkills(_ http.ResponseWriter, r *http.Request) ([]*types.ChatbotSkill, *system.HTTPError) {
	skills, err := apiServer.Store.ListChatbotSkills(r.Context(), mux.Vars(r)["chatbot_id"])
	if err != nil {
		return nil, system.NewHTTPError(err)
	}
	if skills == nil {
		skills = []*types.ChatbotSkill{}
	}
	return skills, nil
}

// createSkillAssociation godoc
// @Summary Bind a skill to a chatbot
// @Tags    chatbots
// @Param   request body CreateSkillAssociationRequest true "Skill to bind"
// @Success 201 {object} types.SkillAssociation
// @Router /api/v1/chatbots/{chatbot_id}/skills [post]
func (apiServer *SyllabiAPIServer) createSkillAssociation(rw http.ResponseWriter, r *http.Request) (*types.SkillAssociation, *system.HTTPError) {
	chatbotID := mux.Vars(r)["chatbot_id"]

	var req CreateSkillAssociationRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}
	if req.SkillID == "" {
		return nil, system.NewHTTPError400("skill_id is required")
	}

	skill, err := apiServer.Store.GetSkill(r.Context(), req.SkillID)
	if err != nil {
		return nil, storeError(err, "skill not found")
	}
	if skill.UserID != "" && skill.UserID != req.UserID {
		return nil, system.NewHTTPError403("access denied to this skill")
	}

	_, err = apiServer.Store.GetChatbotSkill(r.Context(), chatbotID, req.SkillID)
	switch {
	case err == nil:
		return nil, system.NewHTTPError400("skill is already associated with this chatbot")
	case !errors.Is(err, store.ErrNotFound):
		return nil, system.NewHTTPError(err)
	}

	association, err := apiServer.Store.CreateSkillAssociation(r.Context(), &types.SkillAssociation{
		ChatbotID:    chatbotID,
		SkillID:      req.SkillID,
		IsActive:     req.IsActive == nil || *req.IsActive,
		CustomConfig: req.CustomConfig,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create skill association")
		return nil, system.NewHTTPError500("failed to create skill association")
	}

	writeCreated(rw, system.GetAPIPath("/chatbots/"+chatbotID+"/skills/"+association.ID))
	return association, nil
}

// chatbotAssociation loads the association named in the path, an association
// of another chatbot is reported as missing
func (apiServer *SyllabiAPIServer) chatbotAssociation(r *http.Request) (*types.SkillAssociation, *system.HTTPError) {
	vars := mux.Vars(r)

	association, err := apiServer.Store.GetSkillAssociation(r.Context(), vars["association_id"])
	if err != nil {
		return nil, storeError(err, "skill association not found")
	}
	if association.ChatbotID != vars["chatbot_id"] {
		return nil, system.NewHTTPError404("skill association not found")
	}
	return association, nil
}

// updateSkillAssociation godoc
// @Summary Toggle a chatbot skill or replace its custom config
// @Tags    chatbots
// @Param   request body UpdateSkillAssociationRequest true "Fields to change"
// @Success 200 {object} types.SkillAssociation
// @Router /api/v1/chatbots/{chatbot_id}/skills/{association_id} [patch]
func (apiServer *SyllabiAPIServer) updateSkillAssociation(_ http.ResponseWriter, r *http.Request) (*types.SkillAssociation, *system.HTTPError) {
	var req UpdateSkillAssociationRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}

	association, httpErr := apiServer.chatbotAssociation(r)
	if httpErr != nil {
		return nil, httpErr
	}

	if req.IsActive != nil {
		association.IsActive = *req.IsActive
	}
	if req.CustomConfig != nil {
		association.CustomConfig = req.CustomConfig
	}

	updated, err := apiServer.Store.UpdateSkillAssociation(r.Context(), association)
	if err != nil {
		return nil, system.NewHTTPError(err)
	}
	return updated, nil
}

// deleteSkillAssociation godoc
// @Summary Unbind a skill from a chatbot
// @Tags    chatbots
// @Success 200 {object} MessageResponse
// @Router /api/v1/chatbots/{chatbot_id}/skills/{association_id} [delete]
func (apiServer *SyllabiAPIServer) deleteSkillAssociation(_ http.ResponseWriter, r *http.Request) (*MessageResponse, *system.HTTPError) {
	association, httpErr := apiServer.chatbotAssociation(r)
	if httpErr != nil {
		return nil, httpErr
	}

	if err := apiServer.Store.DeleteSkillAssociation(r.Context(), association.ID); err != nil {
		return nil, storeError(err, "skill association not found")
	}
	return &MessageResponse{Message: "skill association removed"}, nil
}
