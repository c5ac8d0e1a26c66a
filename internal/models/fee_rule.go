package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeScope is the specificity tier of a fee rule.
type FeeScope string

const (
	FeeScopeGlobal  FeeScope = "GLOBAL"
	FeeScopeTeacher FeeScope = "TEACHER"
	FeeScopeItem    FeeScope = "ITEM"
)

// Valid reports whether s is one of the known scopes.
func (s FeeScope) Valid() bool {
	switch s {
	case FeeScopeGlobal, FeeScopeTeacher, FeeScopeItem:
		return true
	}
	return false
}

// ItemType is the kind of catalogue item an ITEM rule applies to.
type ItemType string

const (
	ItemTypeLesson  ItemType = "LESSON"
	ItemTypePackage ItemType = "PACKAGE"
	ItemTypeCourse  ItemType = "COURSE"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeLesson, ItemTypePackage, ItemTypeCourse:
		return true
	}
	return false
}

// FeeRule is a platform fee percentage scoped to the whole platform, a teacher or a single item.
type FeeRule struct {
	ID                 string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Scope              FeeScope        `gorm:"type:varchar(16);not null;index:idx_fee_rules_key" json:"scope"`
	TeacherID          string          `gorm:"type:varchar(64);index:idx_fee_rules_key" json:"teacher_id,omitempty"`
	ItemID             string          `gorm:"type:varchar(64);index:idx_fee_rules_key" json:"item_id,omitempty"`
	ItemType           ItemType        `gorm:"type:varchar(16)" json:"item_type,omitempty"`
	PlatformFeePercent decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"platform_fee_percent"`
	Active             bool            `gorm:"not null;default:true;index" json:"active"`
	Description        string          `json:"description,omitempty"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime:false" json:"updated_at"`
	UpdatedBy          string          `gorm:"type:varchar(64)" json:"updated_by"`
}

// Key returns the lookup key of the rule within its scope.
func (r *FeeRule) Key() string {
	switch r.Scope {
	case FeeScopeTeacher:
		return r.TeacherID
	case FeeScopeItem:
		return r.ItemID
	}
	return ""
}

// SameKey reports whether both rules target the same (scope, key) pair.
func (r *FeeRule) SameKey(other *FeeRule) bool {
	return r.Scope == other.Scope && r.Key() == other.Key()
}
