package models

import "time"

// Audit actions
const (
	AuditActionFeeRuleCreated     = "FEE_RULE_CREATED"
	AuditActionFeeRuleUpdated     = "FEE_RULE_UPDATED"
	AuditActionFeeRuleDeactivated = "FEE_RULE_DEACTIVATED"
)

// Audit severities
const (
	AuditSeverityInfo     = "INFO"
	AuditSeverityWarning  = "WARNING"
	AuditSeverityCritical = "CRITICAL"
)

// AuditLog is an append-only record of an administrative change.
type AuditLog struct {
	ID        string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	AdminID   string       `gorm:"type:varchar(64);not null;index" json:"admin_id"`
	AdminName string       `json:"admin_name"`
	Action    string       `gorm:"type:varchar(32);not null" json:"action"`
	TargetID  string       `gorm:"type:varchar(64);index" json:"target_id"`
	Changes   AuditChanges `gorm:"type:jsonb" json:"changes"`
	Timestamp time.Time    `gorm:"not null;index" json:"timestamp"`
	Severity  string       `gorm:"type:varchar(16);not null" json:"severity"`
}
