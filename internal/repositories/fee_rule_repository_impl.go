package repositories

import (
	"context"
	"errors"
	"fmt"
	"tutorly/internal/models"

	"gorm.io/gorm"
)

type feeRuleRepository struct {
	db *gorm.DB
}

func NewFeeRuleRepository(db *gorm.DB) FeeRuleRepository {
	return &feeRuleRepository{
		db: db,
	}
}

func (r *feeRuleRepository) List(ctx context.Context) ([]models.FeeRule, error) {
	var rules []models.FeeRule
	if err := r.db.WithContext(ctx).Order("updated_at DESC, id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list fee rules: %w", err)
	}
	return rules, nil
}

func (r *feeRuleRepository) GetByID(ctx context.Context, id string) (*models.FeeRule, error) {
	var rule models.FeeRule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeRuleNotFound
		}
		return nil, fmt.Errorf("failed to get fee rule: %w", err)
	}
	return &rule, nil
}

func (r *feeRuleRepository) FindByScope(ctx context.Context, scope models.FeeScope, key string) ([]models.FeeRule, error) {
	query := r.db.WithContext(ctx).Where("active = ? AND scope = ?", true, scope)
	switch scope {
	case models.FeeScopeTeacher:
		query = query.Where("teacher_id = ?", key)
	case models.FeeScopeItem:
		query = query.Where("item_id = ?", key)
	}

	var rules []models.FeeRule
	if err := query.Order("updated_at DESC, id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to find fee rules: %w", err)
	}
	return rules, nil
}

func (r *feeRuleRepository) Upsert(ctx context.Context, rule *models.FeeRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rule.Active {
			supersede := tx.Model(&models.FeeRule{}).
				Where("active = ? AND scope = ? AND id <> ?", true, rule.Scope, rule.ID)
			switch rule.Scope {
			case models.FeeScopeTeacher:
				supersede = supersede.Where("teacher_id = ?", rule.TeacherID)
			case models.FeeScopeItem:
				supersede = supersede.Where("item_id = ?", rule.ItemID)
			}
			if err := supersede.Update("active", false).Error; err != nil {
				return fmt.Errorf("failed to supersede fee rules: %w", err)
			}
		}

		if err := tx.Save(rule).Error; err != nil {
			return fmt.Errorf("failed to save fee rule: %w", err)
		}
		return nil
	})
}
