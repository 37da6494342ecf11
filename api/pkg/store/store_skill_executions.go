package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// CreateSkillExecution writes the audit record and bumps the skill's usage
// counters in the same transaction
func (s *GormStore) CreateSkillExecution(ctx context.Context, execution *types.SkillExecution) (*types.SkillExecution, error) {
	if execution.SkillID == "" {
		return nil, errors.New("skill ID is required")
	}
	if execution.ID == "" {
		execution.ID = system.GenerateSkillExecutionID()
	}
	if execution.ExecutionStatus == "" {
		execution.ExecutionStatus = types.SkillExecutionStatusPending
	}

	now := time.Now()
	if execution.CreatedAt.IsZero() {
		execution.CreatedAt = now
	}

	err := s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(execution).Error; err != nil {
			return err
		}
		return tx.Model(&types.Skill{}).
			Where("id = ?", execution.SkillID).
			Updates(map[string]any{
				"execution_count":  gorm.Expr("execution_count + 1"),
				"last_executed_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return execution, nil
}

func (s *GormStore) ListSkillExecutions(ctx context.Context, q *ListSkillExecutionsQuery) ([]*types.SkillExecution, error) {
	var executions []*types.SkillExecution

	query := s.gdb.WithContext(ctx)

	if q != nil {
		if q.SkillID != "" {
			query = query.Where("skill_id = ?", q.SkillID)
		}
		if q.ChatbotID != "" {
			query = query.Where("chatbot_id = ?", q.ChatbotID)
		}
		if q.ChatSessionID != "" {
			query = query.Where("chat_session_id = ?", q.ChatSessionID)
		}
		if q.Offset > 0 {
			query = query.Offset(q.Offset)
		}
		if q.Limit > 0 {
			query = query.Limit(q.Limit)
		}
	}

	err := query.Order("created_at DESC").Find(&executions).Error
	if err != nil {
		return nil, err
	}
	return executions, nil
}

// GetSkillExecutionStats aggregates the executions recorded since the given
// time, a zero since covers the whole history
func (s *GormStore) GetSkillExecutionStats(ctx context.Context, skillID string, since time.Time) (*types.SkillExecutionStats, error) {
	if skillID == "" {
		return nil, errors.New("skill ID is required")
	}

	var row struct {
		Total      int64
		Successful int64
		Average    float64
	}

	query := s.gdb.WithContext(ctx).Model(&types.SkillExecution{}).
		Where("skill_id = ?", skillID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	err := query.
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN execution_status = ? THEN 1 ELSE 0 END), 0) AS successful, "+
				"COALESCE(AVG(execution_time_ms), 0) AS average",
			types.SkillExecutionStatusSuccess,
		).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &types.SkillExecutionStats{
		TotalExecutions:      row.Total,
		SuccessfulExecutions: row.Successful,
		FailedExecutions:     row.Total - row.Successful,
		AverageExecutionMs:   row.Average,
	}
	if row.Total > 0 {
		stats.SuccessRate = float64(row.Successful) / float64(row.Total) * 100
	}
	return stats, nil
}
