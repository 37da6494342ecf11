package server

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/executor"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	defaultExecutionsLimit = 50
	defaultStatsDays       = 7
)

var skillNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{1,50}$`)

type CreateSkillRequest struct {
	UserID         string                `json:"user_id"`
	Name           string                `json:"name"`
	DisplayName    string                `json:"display_name"`
	Description    string                `json:"description"`
	Category       string                `json:"category"`
	FunctionSchema *types.FunctionSchema `json:"function_schema"`
	Configuration  map[string]any        `json:"configuration"`
	IsActive       *bool                 `json:"is_active"`
}

// UpdateSkillRequest only touches the fields that are set, the name of a
// skill is fixed once created
type UpdateSkillRequest struct {
	DisplayName    *string               `json:"display_name"`
	Description    *string               `json:"description"`
	Category       *string               `json:"category"`
	FunctionSchema *types.FunctionSchema `json:"function_schema"`
	Configuration  map[string]any        `json:"configuration"`
	IsActive       *bool                 `json:"is_active"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidateParametersRequest struct {
	Parameters map[string]any `json:"parameters"`
}

type SkillExampleResponse struct {
	SkillID    string         `json:"skill_id"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

func (apiServer *SyllabiAPIServer) getSkill(r *http.Request) (*types.Skill, *system.HTTPError) {
	skillID := mux.Vars(r)["skill_id"]

	skill, err := apiServer.Store.GetSkill(r.Context(), skillID)
	if err != nil {
		return nil, storeError(err, "skill not found")
	}
	return skill, nil
}

// ownedSkill loads the skill named in the path and checks that the user_id
// query parameter owns it. Builtin skills belong to nobody.
func (apiServer *SyllabiAPIServer) ownedSkill(r *http.Request) (*types.Skill, *system.HTTPError) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		return nil, system.NewHTTPError400("user_id is required")
	}

	skill, httpErr := apiServer.getSkill(r)
	if httpErr != nil {
		return nil, httpErr
	}
	if skill.Type == types.SkillTypeBuiltin || skill.UserID != userID {
		return nil, system.NewHTTPError403("access denied")
	}
	return skill, nil
}

// storeError maps ErrNotFound to a 404, anything else is a 500
func storeError(err error, notFound string) *system.HTTPError {
	if errors.Is(err, store.ErrNotFound) {
		return system.NewHTTPError404(notFound)
	}
	return system.NewHTTPError(err)
}

// listSkills godoc
// @Summary Skills available to a user: their own custom skills plus every builtin
// @Tags    skills
// @Param   user_id  query string false "Owner, all skills when empty"
// @Param   category query string false "Filter by category"
// @Param   type     query string false "builtin or custom"
// @Success 200 {array} types.Skill
// @Router /api/v1/skills [get]
func (apiServer *SyllabiAPIServer) listSkills(_ http.ResponseWriter, r *http.Request) ([]*types.Skill, error) {
	userID := r.URL.Query().Get("user_id")

	skills, err := apiServer.Store.ListSkills(r.Context(), &store.ListSkillsQuery{
		UserID:         userID,
		IncludeBuiltin: userID != "",
		Type:           types.SkillType(r.URL.Query().Get("type")),
		Category:       r.URL.Query().Get("category"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	if skills == nil {
		skills = []*types.Skill{}
	}
	return skills, nil
}

// createSkill godoc
// @Summary Create a custom webhook skill for a user
// @Tags    skills
// @Param   request body CreateSkillRequest true "Skill definition"
// @Success 201 {object} types.Skill
// @Router /api/v1/skills [post]
func (apiServer *SyllabiAPIServer) createSkill(rw http.ResponseWriter, r *http.Request) (*types.Skill, *system.HTTPError) {
	var req CreateSkillRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}

	if req.UserID == "" {
		return nil, system.NewHTTPError400("user_id is required")
	}
	if !skillNameRegex.MatchString(req.Name) {
		return nil, system.NewHTTPError400("name must be 1-50 letters, numbers or underscores")
	}

	skill := &types.Skill{
		UserID:        req.UserID,
		Name:          req.Name,
		Type:          types.SkillTypeCustom,
		DisplayName:   req.DisplayName,
		Description:   req.Description,
		Category:      req.Category,
		Configuration: req.Configuration,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if req.FunctionSchema != nil {
		skill.FunctionSchema = *req.FunctionSchema
	}
	if skill.FunctionSchema.Name == "" {
		skill.FunctionSchema.Name = skill.Name
	}
	if skill.FunctionSchema.Description == "" {
		skill.FunctionSchema.Description = skill.Description
	}

	if httpErr := validateCustomSkill(skill); httpErr != nil {
		return nil, httpErr
	}

	unique, err := apiServer.Store.IsSkillNameUnique(r.Context(), req.UserID, types.SkillTypeCustom, req.Name, "")
	if err != nil {
		return nil, system.NewHTTPError(err)
	}
	if !unique {
		return nil, system.NewHTTPError400("a skill with this name already exists")
	}

	created, err := apiServer.Store.CreateSkill(r.Context(), skill)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create skill")
		return nil, system.NewHTTPError500("failed to create skill")
	}

	log.Ctx(r.Context()).Info().Str("skill_id", created.ID).Str("name", created.Name).Msg("created custom skill")

	writeCreated(rw, system.GetAPIPath("/skills/"+created.ID))
	return created, nil
}

// getSkillByID godoc
// @Summary Get a builtin skill or one of the user's custom skills
// @Tags    skills
// @Param   user_id query string false "Caller, custom skills of other users are denied"
// @Success 200 {object} types.Skill
// @Router /api/v1/skills/{skill_id} [get]
func (apiServer *SyllabiAPIServer) getSkillByID(_ http.ResponseWriter, r *http.Request) (*types.Skill, *system.HTTPError) {
	skill, httpErr := apiServer.getSkill(r)
	if httpErr != nil {
		return nil, httpErr
	}

	userID := r.URL.Query().Get("user_id")
	if userID != "" && skill.UserID != "" && skill.UserID != userID {
		return nil, system.NewHTTPError403("access denied")
	}
	return skill, nil
}

// updateSkill godoc
// @Summary Update a custom skill, is_active=false disables it everywhere
// @Tags    skills
// @Param   user_id query string             true "Owner"
// @Param   request body  UpdateSkillRequest true "Fields to change"
// @Success 200 {object} types.Skill
// @Router /api/v1/skills/{skill_id} [patch]
func (apiServer *SyllabiAPIServer) updateSkill(_ http.ResponseWriter, r *http.Request) (*types.Skill, *system.HTTPError) {
	var req UpdateSkillRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}

	skill, httpErr := apiServer.ownedSkill(r)
	if httpErr != nil {
		return nil, httpErr
	}

	if req.DisplayName != nil {
		skill.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}
	if req.Category != nil {
		skill.Category = *req.Category
	}
	if req.FunctionSchema != nil {
		skill.FunctionSchema = *req.FunctionSchema
		if skill.FunctionSchema.Name == "" {
			skill.FunctionSchema.Name = skill.Name
		}
	}
	if req.Configuration != nil {
		skill.Configuration = req.Configuration
	}
	if req.IsActive != nil {
		skill.IsActive = *req.IsActive
	}

	if httpErr := validateCustomSkill(skill); httpErr != nil {
		return nil, httpErr
	}

	updated, err := apiServer.Store.UpdateSkill(r.Context(), skill)
	if err != nil {
		return nil, storeError(err, "skill not found")
	}
	return updated, nil
}

// deleteSkill godoc
// @Summary Delete a custom skill and unbind it from every chatbot
// @Tags    skills
// @Param   user_id query string true "Owner"
// @Success 200 {object} MessageResponse
// @Router /api/v1/skills/{skill_id} [delete]
func (apiServer *SyllabiAPIServer) deleteSkill(_ http.ResponseWriter, r *http.Request) (*MessageResponse, *system.HTTPError) {
	skill, httpErr := apiServer.ownedSkill(r)
	if httpErr != nil {
		return nil, httpErr
	}

	if err := apiServer.Store.DeleteSkill(r.Context(), skill.ID); err != nil {
		return nil, storeError(err, "skill not found")
	}

	log.Ctx(r.Context()).Info().Str("skill_id", skill.ID).Msg("deleted custom skill")
	return &MessageResponse{Message: "skill deleted"}, nil
}

// validateCustomSkill checks the fields a tenant controls: text lengths, the
// tool contract and the webhook target
func validateCustomSkill(skill *types.Skill) *system.HTTPError {
	switch {
	case skill.DisplayName == "" || utf8.RuneCountInString(skill.DisplayName) > 100:
		return system.NewHTTPError400("display_name must be 1-100 characters")
	case skill.Description == "" || utf8.RuneCountInString(skill.Description) > 500:
		return system.NewHTTPError400("description must be 1-500 characters")
	case utf8.RuneCountInString(skill.Category) > 50:
		return system.NewHTTPError400("category must be at most 50 characters")
	}

	if err := schema.ValidateForTool(skill); err != nil {
		return system.NewHTTPError400(err.Error())
	}

	hook := executor.NormalizeWebhookConfig(skill.Configuration, 0)
	if hook.URL == "" || !schema.IsURL(hook.URL) {
		return system.NewHTTPError400("configuration must contain a valid webhook url")
	}
	switch hook.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return system.NewHTTPError400("unsupported webhook method " + hook.Method)
	}
	return nil
}

// validateSkillParameters godoc
// @Summary Check parameters against a skill's schema without executing it
// @Tags    skills
// @Param   request body ValidateParametersRequest true "Parameters to check"
// @Success 200 {object} schema.ValidationResult
// @Router /api/v1/skills/{skill_id}/validate [post]
func (apiServer *SyllabiAPIServer) validateSkillParameters(_ http.ResponseWriter, r *http.Request) (*schema.ValidationResult, *system.HTTPError) {
	var req ValidateParametersRequest
	if httpErr := decodeBody(r, &req); httpErr != nil {
		return nil, httpErr
	}

	skill, httpErr := apiServer.getSkill(r)
	if httpErr != nil {
		return nil, httpErr
	}

	result := schema.ValidateParameters(skill, req.Parameters)
	return &result, nil
}

// getSkillExample godoc
// @Summary Example parameters for a skill, used by the test console
// @Tags    skills
// @Success 200 {object} SkillExampleResponse
// @Router /api/v1/skills/{skill_id}/example [get]
func (apiServer *SyllabiAPIServer) getSkillExample(_ http.ResponseWriter, r *http.Request) (*SkillExampleResponse, *system.HTTPError) {
	skill, httpErr := apiServer.getSkill(r)
	if httpErr != nil {
		return nil, httpErr
	}

	return &SkillExampleResponse{
		SkillID:    skill.ID,
		Name:       skill.Name,
		Parameters: schema.ExampleParameters(skill),
	}, nil
}

// listSkillExecutions godoc
// @Summary Audit records of a skill, newest first
// @Tags    skills
// @Param   chatbot_id      query string false "Filter by chatbot"
// @Param   chat_session_id query string false "Filter by chat session"
// @Param   offset          query int    false "Offset"
// @Param   limit           query int    false "Limit, 50 by default"
// @Success 200 {array} types.SkillExecution
// @Router /api/v1/skills/{skill_id}/executions [get]
func (apiServer *SyllabiAPIServer) listSkillExecutions(_ http.ResponseWriter, r *http.Request) ([]*types.SkillExecution, *system.HTTPError) {
	offset, httpErr := queryInt(r, "offset", 0)
	if httpErr != nil {
		return nil, httpErr
	}
	limit, httpErr := queryInt(r, "limit", defaultExecutionsLimit)
	if httpErr != nil {
		return nil, httpErr
	}

	executions, err := apiServer.Store.ListSkillExecutions(r.Context(), &store.ListSkillExecutionsQuery{
		SkillID:       mux.Vars(r)["skill_id"],
		ChatbotID:     r.URL.Query().Get("chatbot_id"),
		ChatSessionID: r.URL.Query().Get("chat_session_id"),
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list skill executions")
		return nil, system.NewHTTPError500("failed to list skill executions")
	}
	if executions == nil {
		executions = []*types.SkillExecution{}
	}
	return executions, nil
}

// getSkillStats godoc
// @Summary Execution totals, success rate and average latency of a skill
// @Tags    skills
// @Param   days query int false "Window in days, 7 by default, 0 for all time"
// @Success 200 {object} types.SkillExecutionStats
// @Router /api/v1/skills/{skill_id}/stats [get]
func (apiServer *SyllabiAPIServer) getSkillStats(_ http.ResponseWriter, r *http.Request) (*types.SkillExecutionStats, *system.HTTPError) {
	days, httpErr := queryInt(r, "days", defaultStatsDays)
	if httpErr != nil {
		return nil, httpErr
	}

	var since time.Time
	if days > 0 {
		since = time.Now().AddDate(0, 0, -days)
	}

	stats, err := apiServer.Store.GetSkillExecutionStats(r.Context(), mux.Vars(r)["skill_id"], since)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to get skill stats")
		return nil, system.NewHTTPError500("failed to get skill stats")
	}
	return stats, nil
}
