// Package executor runs a chatbot skill and records the outcome.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	errSkillDisabled = "Skill is currently disabled"
	errSkillNotFound = "Skill not found"
)

// Executor dispatches a skill to its builtin handler or webhook. It is safe
// for concurrent use, executions share no state.
type Executor struct {
	store    store.Store
	registry *registry.Registry
	cfg      config.Skills
	webhooks *resty.Client
}

type Option func(*Executor)

// WithHTTPClient sets the client used for custom skill webhooks
func WithHTTPClient(client *http.Client) Option {
	return func(e *Executor) {
		e.webhooks = resty.NewWithClient(client)
	}
}

func New(store store.Store, registry *registry.Registry, cfg config.Skills, opts ...Option) *Executor {
	e := &Executor{
		store:    store,
		registry: registry,
		cfg:      cfg,
		webhooks: resty.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecuteSkill never panics and never returns an error: every failure is
// reported in the result. Unless sctx.TestMode is set an audit record is
// written, a failure to write it is only logged.
func (e *Executor) ExecuteSkill(ctx context.Context, skill *types.ChatbotSkill, params map[string]any, sctx types.SkillExecutionContext) types.SkillExecutionResult {
	if skill == nil {
		return types.ErrorResult(errSkillNotFound)
	}
	if params == nil {
		params = map[string]any{}
	}
	if sctx.SkillID == "" {
		sctx.SkillID = skill.Skill.ID
	}
	if sctx.ChatbotID == "" {
		sctx.ChatbotID = skill.Association.ChatbotID
	}

	logger := log.Ctx(ctx).With().
		Str("skill_id", skill.Skill.ID).
		Str("skill_name", skill.Skill.Name).
		Str("chatbot_id", sctx.ChatbotID).
		Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	result, status := e.dispatch(ctx, skill, params, sctx)
	elapsed := time.Since(start)

	if result.Success {
		logger.Debug().Dur("duration", elapsed).Msg("skill executed")
	} else {
		logger.Info().Dur("duration", elapsed).Str("error", result.Error).Msg("skill execution failed")
	}

	if !sctx.TestMode {
		e.audit(ctx, skill, params, sctx, result, status, elapsed)
	}

	return result
}

func (e *Executor) dispatch(ctx context.Context, skill *types.ChatbotSkill, params map[string]any, sctx types.SkillExecutionContext) (result types.SkillExecutionResult, status types.SkillExecutionStatus) {
	defer func() {
		if r := recover(); r != nil {
			log.Ctx(ctx).Error().Interface("panic", r).Msg("recovered from panic executing skill")
			result = types.ErrorResult(fmt.Sprint(r))
			status = types.SkillExecutionStatusError
		}
	}()

	if !skill.Executable() {
		return types.ErrorResult(errSkillDisabled), types.SkillExecutionStatusError
	}

	if e.cfg.StrictValidation {
		validation := schema.ValidateParameters(&skill.Skill, params)
		if !validation.Valid {
			return types.ErrorResult("Invalid parameters: " + strings.Join(validation.Errors, "; ")), types.SkillExecutionStatusError
		}
	}

	switch skill.Skill.Type {
	case types.SkillTypeCustom:
		return e.executeCustomSkill(ctx, skill, params)
	case types.SkillTypeBuiltin:
		result = e.executeBuiltinSkill(ctx, skill, params, sctx)
	default:
		result = types.ErrorResult(fmt.Sprintf("Unknown skill type: %s", skill.Skill.Type))
	}

	return result, statusOf(result)
}

func (e *Executor) executeBuiltinSkill(ctx context.Context, skill *types.ChatbotSkill, params map[string]any, sctx types.SkillExecutionContext) types.SkillExecutionResult {
	var handler registry.Handler
	if e.registry != nil {
		handler, _ = e.registry.Lookup(skill.Skill.Name)
	}
	if handler == nil {
		return types.ErrorResult(fmt.Sprintf("Built-in skill '%s' not found in registry", skill.Skill.Name))
	}

	resolved, err := e.EnsureIntegrationID(ctx, skill.Skill.Name, sctx)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	data, err := handler(ctx, params, resolved)
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	return types.SuccessResult(data)
}

func (e *Executor) audit(ctx context.Context, skill *types.ChatbotSkill, params map[string]any, sctx types.SkillExecutionContext, result types.SkillExecutionResult, status types.SkillExecutionStatus, elapsed time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			log.Ctx(ctx).Warn().Interface("panic", r).Msg("recovered from panic logging skill execution")
		}
	}()

	if e.store == nil {
		log.Ctx(ctx).Warn().Msg("no store configured, skill execution not logged")
		return
	}

	execution := &types.SkillExecution{
		ID:              system.GenerateSkillExecutionID(),
		SkillID:         skill.Skill.ID,
		ChatbotID:       sctx.ChatbotID,
		ChatSessionID:   sctx.ChatSessionID,
		UserID:          sctx.UserID,
		ChannelType:     sctx.ChannelOrDefault(),
		ExecutionStatus: status,
		InputParameters: toJSON(ctx, params),
		ErrorMessage:    result.Error,
		ExecutionTimeMs: elapsed.Milliseconds(),
	}
	if result.Data != nil {
		execution.OutputResult = toJSON(ctx, result.Data)
	}

	if _, err := e.store.CreateSkillExecution(ctx, execution); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to log skill execution (continuing execution)")
	}
}

func toJSON(ctx context.Context, v any) datatypes.JSON {
	bts, err := json.Marshal(v)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to encode skill execution payload")
		return nil
	}
	return datatypes.JSON(bts)
}

func statusOf(result types.SkillExecutionResult) types.SkillExecutionStatus {
	if result.Success {
		return types.SkillExecutionStatusSuccess
	}
	return types.SkillExecutionStatusError
}
