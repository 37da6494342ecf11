package types

import (
	"time"

	"gorm.io/datatypes"
)

type Channel string

const (
	ChannelWeb     Channel = "web"
	ChannelEmbed   Channel = "embed"
	ChannelSlack   Channel = "slack"
	ChannelDiscord Channel = "discord"
	ChannelAPI     Channel = "api"
	ChannelAlexa   Channel = "alexa"
)

type SkillExecutionStatus string

const (
	SkillExecutionStatusPending SkillExecutionStatus = "pending"
	SkillExecutionStatusSuccess SkillExecutionStatus = "success"
	SkillExecutionStatusError   SkillExecutionStatus = "error"
	SkillExecutionStatusTimeout SkillExecutionStatus = "timeout"
)

// SkillExecutionContext is built per tool invocation and never persisted
type SkillExecutionContext struct {
	SkillID       string  `json:"skill_id"`
	ChatSessionID string  `json:"chat_session_id,omitempty"`
	UserID        string  `json:"user_id,omitempty"`
	ChatbotID     string  `json:"chatbot_id,omitempty"`
	IntegrationID string  `json:"integration_id,omitempty"`
	Channel       Channel `json:"channel,omitempty"`
	// TestMode suppresses the audit record
	TestMode bool `json:"test_mode,omitempty"`
}

// ChannelOrDefault returns the channel, defaulting to web
func (c SkillExecutionContext) ChannelOrDefault() Channel {
	if c.Channel == "" {
		return ChannelWeb
	}
	return c.Channel
}

// SkillExecutionResult is the only shape callers of the executor see.
// Use SuccessResult and ErrorResult to build one.
type SkillExecutionResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResult(data any) SkillExecutionResult {
	return SkillExecutionResult{Success: true, Data: data}
}

func ErrorResult(message string) SkillExecutionResult {
	if message == "" {
		message = "Unknown error"
	}
	return SkillExecutionResult{Success: false, Error: message}
}

// SkillExecution is the audit record written for every non-test execution
type SkillExecution struct {
	ID              string               `json:"id" gorm:"primaryKey"`
	SkillID         string               `json:"skill_id" gorm:"not null;index"`
	ChatbotID       string               `json:"chatbot_id" gorm:"index"`
	ChatSessionID   string               `json:"chat_session_id" gorm:"index"`
	UserID          string               `json:"user_id"`
	ChannelType     Channel              `json:"channel_type" gorm:"type:text"`
	ExecutionStatus SkillExecutionStatus `json:"execution_status" gorm:"not null;type:text;index"`
	InputParameters datatypes.JSON       `json:"input_parameters"`
	OutputResult    datatypes.JSON       `json:"output_result"`
	ErrorMessage    string               `json:"error_message,omitempty" gorm:"type:text"`
	ExecutionTimeMs int64                `json:"execution_time_ms"`
	CreatedAt       time.Time            `json:"created_at" gorm:"autoCreateTime;index"`
}

// SkillExecutionStats aggregates the audit records of one skill
type SkillExecutionStats struct {
	TotalExecutions      int64   `json:"total_executions"`
	SuccessfulExecutions int64   `json:"successful_executions"`
	FailedExecutions     int64   `json:"failed_executions"`
	AverageExecutionMs   float64 `json:"average_execution_time_ms"`
	SuccessRate          float64 `json:"success_rate"`
}
