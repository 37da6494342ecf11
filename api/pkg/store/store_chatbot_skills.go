package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const defaultMinSimilarity = 0.3

// likeEscaper makes user text match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *GormStore) CreateSkillAssociation(ctx context.Context, association *types.SkillAssociation) (*types.SkillAssociation, error) {
	if association.ChatbotID == "" {
		return nil, errors.New("chatbot ID is required")
	}
	if association.SkillID == "" {
		return nil, errors.New("skill ID is required")
	}
	if association.ID == "" {
		association.ID = system.GenerateSkillAssociationID()
	}

	err := s.gdb.WithContext(ctx).Omit(clause.Associations).Create(association).Error
	if err != nil {
		return nil, err
	}
	return association, nil
}

func (s *GormStore) UpdateSkillAssociation(ctx context.Context, association *types.SkillAssociation) (*types.SkillAssociation, error) {
	if association.ID == "" {
		return nil, errors.New("association ID is required")
	}

	association.UpdatedAt = time.Now()
	err := s.gdb.WithContext(ctx).Omit(clause.Associations).Save(association).Error
	if err != nil {
		return nil, err
	}
	return association, nil
}

func (s *GormStore) GetSkillAssociation(ctx context.Context, id string) (*types.SkillAssociation, error) {
	if id == "" {
		return nil, errors.New("association ID is required")
	}

	var association types.SkillAssociation
	err := s.gdb.WithContext(ctx).Where("id = ?", id).First(&association).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &association, nil
}

func (s *GormStore) DeleteSkillAssociation(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("association ID is required")
	}

	res := s.gdb.WithContext(ctx).Delete(&types.SkillAssociation{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListChatbotSkills returns every skill bound to the chatbot, active or not,
// newest binding first
func (s *GormStore) ListChatbotSkills(ctx context.Context, chatbotID string) ([]*types.ChatbotSkill, error) {
	if chatbotID == "" {
		return nil, errors.New("chatbot ID is required")
	}

	var associations []*types.SkillAssociation
	err := s.gdb.WithContext(ctx).
		Joins("Skill").
		Where("chatbot_skill_associations.chatbot_id = ?", chatbotID).
		Order("chatbot_skill_associations.created_at DESC").
		Find(&associations).Error
	if err != nil {
		return nil, err
	}
	return toChatbotSkills(associations), nil
}

// GetChatbotSkill returns the skill as bound to the chatbot regardless of the
// active flags, the executor decides what to do with disabled skills
func (s *GormStore) GetChatbotSkill(ctx context.Context, chatbotID, skillID string) (*types.ChatbotSkill, error) {
	var association types.SkillAssociation
	err := s.gdb.WithContext(ctx).
		Joins("Skill").
		Where("chatbot_skill_associations.chatbot_id = ? AND chatbot_skill_associations.skill_id = ?", chatbotID, skillID).
		First(&association).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if association.Skill == nil {
		return nil, ErrNotFound
	}
	return toChatbotSkill(&association), nil
}

// activeSkillsQuery selects associations of the chatbot where both the
// association and the skill are active
func (s *GormStore) activeSkillsQuery(ctx context.Context, chatbotID string) *gorm.DB {
	return s.gdb.WithContext(ctx).
		Model(&types.SkillAssociation{}).
		InnerJoins("Skill", s.gdb.Where(&types.Skill{IsActive: true})).
		Where("chatbot_skill_associations.chatbot_id = ? AND chatbot_skill_associations.is_active = ?", chatbotID, true)
}

func (s *GormStore) GetActiveSkillsForChatbot(ctx context.Context, chatbotID string) ([]*types.ChatbotSkill, error) {
	if chatbotID == "" {
		return nil, errors.New("chatbot ID is required")
	}

	var associations []*types.SkillAssociation
	err := s.activeSkillsQuery(ctx, chatbotID).
		Order("chatbot_skill_associations.created_at DESC").
		Find(&associations).Error
	if err != nil {
		return nil, err
	}
	return toChatbotSkills(associations), nil
}

func (s *GormStore) CountActiveSkillsForChatbot(ctx context.Context, chatbotID string) (int64, error) {
	if chatbotID == "" {
		return 0, errors.New("chatbot ID is required")
	}

	var count int64
	err := s.activeSkillsQuery(ctx, chatbotID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SearchChatbotSkillsByEmbedding ranks the chatbot's active skills by cosine
// distance to the query embedding
func (s *GormStore) SearchChatbotSkillsByEmbedding(ctx context.Context, q *SkillEmbeddingQuery) ([]*types.ChatbotSkill, error) {
	if !s.vectorSearchSupported() {
		return nil, ErrVectorSearchUnsupported
	}
	if q.ChatbotID == "" {
		return nil, errors.New("chatbot ID is required")
	}
	if len(q.Embedding) == 0 {
		return nil, errors.New("query embedding is required")
	}

	minSimilarity := q.MinSimilarity
	if minSimilarity == 0 {
		minSimilarity = defaultMinSimilarity
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 5
	}

	vec := pgvector.NewVector(q.Embedding)

	var associations []*types.SkillAssociation
	err := s.activeSkillsQuery(ctx, q.ChatbotID).
		Where(`"Skill".embedding IS NOT NULL`).
		Where(`1 - ("Skill".embedding <=> ?) >= ?`, vec, minSimilarity).
		Order(clause.OrderBy{
			Expression: clause.Expr{SQL: `"Skill".embedding <=> ?`, Vars: []interface{}{vec}},
		}).
		Limit(limit).
		Find(&associations).Error
	if err != nil {
		return nil, err
	}
	return toChatbotSkills(associations), nil
}

// SearchChatbotSkillsByText is a case-insensitive substring match over
// description, display name and name
func (s *GormStore) SearchChatbotSkillsByText(ctx context.Context, chatbotID, text string, limit int) ([]*types.ChatbotSkill, error) {
	if chatbotID == "" {
		return nil, errors.New("chatbot ID is required")
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(text))) + "%"

	query := s.activeSkillsQuery(ctx, chatbotID).
		Where(`(LOWER("Skill".description) LIKE ? ESCAPE '\' OR LOWER("Skill".display_name) LIKE ? ESCAPE '\' OR LOWER("Skill".name) LIKE ? ESCAPE '\')`, pattern, pattern, pattern).
		Order("chatbot_skill_associations.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var associations []*types.SkillAssociation
	err := query.Find(&associations).Error
	if err != nil {
		return nil, err
	}
	return toChatbotSkills(associations), nil
}

func toChatbotSkills(associations []*types.SkillAssociation) []*types.ChatbotSkill {
	result := make([]*types.ChatbotSkill, 0, len(associations))
	for _, a := range associations {
		if a.Skill == nil {
			continue
		}
		result = append(result, toChatbotSkill(a))
	}
	return result
}

func toChatbotSkill(a *types.SkillAssociation) *types.ChatbotSkill {
	skill := *a.Skill
	association := *a
	association.Skill = nil
	return &types.ChatbotSkill{
		Skill:       skill,
		Association: association,
	}
}
