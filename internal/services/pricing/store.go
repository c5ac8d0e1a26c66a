package pricing

import (
	"context"
	"errors"
	"fmt"
	"tutorly/internal/models"
	"tutorly/internal/repositories"

	"github.com/google/uuid"
)

func (s *service) ListRules(ctx context.Context) ([]models.FeeRule, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		s.metrics.RecordError("list_rules", "repository")
		return nil, fmt.Errorf("failed to list fee rules: %w", err)
	}
	return rules, nil
}

func (s *service) GetRule(ctx context.Context, ruleID string) (*models.FeeRule, error) {
	rule, err := s.repo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeRuleNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, ruleID)
		}
		return nil, fmt.Errorf("failed to load fee rule: %w", err)
	}
	return rule, nil
}

func (s *service) SaveRule(ctx context.Context, admin Admin, input RuleInput) (*models.FeeRule, error) {
	if err := validateRuleInput(input); err != nil {
		s.metrics.RecordError("save_rule", errorType(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var before *models.FeeRule
	if input.ID != "" {
		existing, err := s.repo.GetByID(ctx, input.ID)
		switch {
		case err == nil:
			before = existing
		case errors.Is(err, repositories.ErrFeeRuleNotFound):
		default:
			s.metrics.RecordError("save_rule", "repository")
			return nil, fmt.Errorf("failed to load fee rule: %w", err)
		}
	}

	rule := &models.FeeRule{
		ID:                 input.ID,
		Scope:              input.Scope,
		TeacherID:          input.TeacherID,
		ItemID:             input.ItemID,
		ItemType:           input.ItemType,
		PlatformFeePercent: input.PlatformFeePercent,
		Active:             true,
		Description:        input.Description,
		UpdatedAt:          s.now(),
		UpdatedBy:          admin.ID,
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	if err := s.repo.Upsert(ctx, rule); err != nil {
		s.metrics.RecordError("save_rule", "repository")
		return nil, fmt.Errorf("failed to save fee rule: %w", err)
	}

	action, severity := models.AuditActionFeeRuleCreated, models.AuditSeverityInfo
	if before != nil {
		action, severity = models.AuditActionFeeRuleUpdated, models.AuditSeverityWarning
	}
	s.recordAudit(ctx, admin, action, severity, before, rule)

	s.logger.Info("fee rule saved",
		"rule_id", rule.ID,
		"scope", rule.Scope,
		"key", rule.Key(),
		"percent", rule.PlatformFeePercent.String(),
		"admin_id", admin.ID,
	)
	return rule, nil
}

func (s *service) DeactivateRule(ctx context.Context, admin Admin, ruleID string) (*models.FeeRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, err := s.repo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeRuleNotFound) {
			s.metrics.RecordError("deactivate_rule", "rule_not_found")
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, ruleID)
		}
		s.metrics.RecordError("deactivate_rule", "repository")
		return nil, fmt.Errorf("failed to load fee rule: %w", err)
	}
	if !before.Active {
		return before, nil
	}

	rule := *before
	rule.Active = false
	rule.UpdatedAt = s.now()
	rule.UpdatedBy = admin.ID

	if err := s.repo.Upsert(ctx, &rule); err != nil {
		s.metrics.RecordError("deactivate_rule", "repository")
		return nil, fmt.Errorf("failed to deactivate fee rule: %w", err)
	}

	s.recordAudit(ctx, admin, models.AuditActionFeeRuleDeactivated, models.AuditSeverityWarning, before, &rule)
	s.logger.Info("fee rule deactivated", "rule_id", rule.ID, "admin_id", admin.ID)
	return &rule, nil
}

func (s *service) recordAudit(ctx context.Context, admin Admin, action, severity string, before, after *models.FeeRule) {
	entry := &models.AuditLog{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		AdminName: admin.Name,
		Action:    action,
		TargetID:  after.ID,
		Changes:   models.AuditChanges{Before: before, After: after},
		Timestamp: s.now(),
		Severity:  severity,
	}

	s.metrics.RecordRuleChange(action)
	if err := s.audit.RecordAudit(ctx, entry); err != nil {
		s.metrics.RecordError("audit", "sink")
		s.logger.Error("failed to record audit entry",
			"audit_id", entry.ID, "action", action, "target_id", entry.TargetID, "err", err)
	}
}

func validateRuleInput(input RuleInput) error {
	if !validPercent(input.PlatformFeePercent) {
		return fmt.Errorf("%w: %s", ErrInvalidPercentage, input.PlatformFeePercent)
	}
	if !storablePercent(input.PlatformFeePercent) {
		return fmt.Errorf("%w: %s has more than %d decimal places",
			ErrInvalidPercentage, input.PlatformFeePercent, MaxPercentPlaces)
	}

	switch input.Scope {
	case models.FeeScopeGlobal:
		if input.TeacherID != "" || input.ItemID != "" || input.ItemType != "" {
			return fmt.Errorf("%w: GLOBAL rules take no teacher or item", ErrInvalidScope)
		}
	case models.FeeScopeTeacher:
		if input.TeacherID == "" {
			return fmt.Errorf("%w: TEACHER rules require teacher_id", ErrInvalidScope)
		}
		if input.ItemID != "" || input.ItemType != "" {
			return fmt.Errorf("%w: TEACHER rules take no item", ErrInvalidScope)
		}
	case models.FeeScopeItem:
		if input.ItemID == "" {
			return fmt.Errorf("%w: ITEM rules require item_id", ErrInvalidScope)
		}
		if !input.ItemType.Valid() {
			return fmt.Errorf("%w: unknown item_type %q", ErrInvalidScope, input.ItemType)
		}
		if input.TeacherID != "" {
			return fmt.Errorf("%w: ITEM rules take no teacher", ErrInvalidScope)
		}
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidScope, input.Scope)
	}
	return nil
}
