package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func (s *GormStore) CreateSkill(ctx context.Context, skill *types.Skill) (*types.Skill, error) {
	if skill.Name == "" {
		return nil, errors.New("skill name is required")
	}
	if skill.Type == "" {
		return nil, errors.New("skill type is required")
	}
	if skill.ID == "" {
		skill.ID = system.GenerateSkillID()
	}
	if skill.FunctionSchema.Name == "" {
		skill.FunctionSchema.Name = skill.Name
	}

	err := s.gdb.WithContext(ctx).Create(skill).Error
	if err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *GormStore) UpdateSkill(ctx context.Context, skill *types.Skill) (*types.Skill, error) {
	if skill.ID == "" {
		return nil, errors.New("skill ID is required")
	}

	skill.UpdatedAt = time.Now()
	err := s.gdb.WithContext(ctx).Save(skill).Error
	if err != nil {
		return nil, err
	}
	return s.GetSkill(ctx, skill.ID)
}

func (s *GormStore) GetSkill(ctx context.Context, id string) (*types.Skill, error) {
	if id == "" {
		return nil, errors.New("skill ID is required")
	}

	var skill types.Skill
	err := s.gdb.WithContext(ctx).Where("id = ?", id).First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (s *GormStore) GetSkillByName(ctx context.Context, userID string, skillType types.SkillType, name string) (*types.Skill, error) {
	var skill types.Skill
	err := s.gdb.WithContext(ctx).
		Where("user_id = ? AND type = ? AND name = ?", userID, skillType, name).
		First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (s *GormStore) ListSkills(ctx context.Context, q *ListSkillsQuery) ([]*types.Skill, error) {
	var skills []*types.Skill

	query := s.gdb.WithContext(ctx)

	if q != nil {
		switch {
		case q.UserID != "" && q.IncludeBuiltin:
			query = query.Where("user_id = ? OR type = ?", q.UserID, types.SkillTypeBuiltin)
		case q.UserID != "":
			query = query.Where("user_id = ?", q.UserID)
		}
		if q.Type != "" {
			query = query.Where("type = ?", q.Type)
		}
		if q.Category != "" {
			query = query.Where("category = ?", q.Category)
		}
		if q.MissingEmbedding {
			query = query.Where("embedding IS NULL")
		}
		if q.Offset > 0 {
			query = query.Offset(q.Offset)
		}
		if q.Limit > 0 {
			query = query.Limit(q.Limit)
		}
	}

	err := query.Order("created_at DESC").Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// DeleteSkill removes the skill together with its chatbot bindings. Execution
// records are kept for the audit trail.
func (s *GormStore) DeleteSkill(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("skill ID is required")
	}

	return s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("skill_id = ?", id).Delete(&types.SkillAssociation{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&types.Skill{ID: id})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// IsSkillNameUnique checks the owner+type scope, excludeID allows renaming a
// skill to its own name
func (s *GormStore) IsSkillNameUnique(ctx context.Context, userID string, skillType types.SkillType, name, excludeID string) (bool, error) {
	var count int64

	query := s.gdb.WithContext(ctx).Model(&types.Skill{}).
		Where("user_id = ? AND type = ? AND name = ?", userID, skillType, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *GormStore) UpdateSkillEmbedding(ctx context.Context, id string, embedding []float32) error {
	if id == "" {
		return errors.New("skill ID is required")
	}
	if len(embedding) == 0 {
		return fmt.Errorf("no embedding provided for skill %s", id)
	}

	vec := pgvector.NewVector(embedding)
	res := s.gdb.WithContext(ctx).Model(&types.Skill{}).
		Where("id = ?", id).
		Update("embedding", &vec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
