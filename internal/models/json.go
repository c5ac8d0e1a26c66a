package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON type for flexible storage
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	bytes, err := scanBytes(value)
	if err != nil || bytes == nil {
		return err
	}
	return json.Unmarshal(bytes, j)
}

// AuditChanges holds the rule snapshot before and after an administrative change.
type AuditChanges struct {
	Before *FeeRule `json:"before"`
	After  *FeeRule `json:"after"`
}

// Value implements the driver.Valuer interface
func (c AuditChanges) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface
func (c *AuditChanges) Scan(value interface{}) error {
	bytes, err := scanBytes(value)
	if err != nil || bytes == nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported json column type")
	}
}
