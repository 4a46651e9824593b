package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a jsonb-backed string slice column.
type StringList []string

// Value implements the driver Valuer interface.
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements the Scanner interface.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("string list is not a byte slice")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// PolicyTemplate is a named access-policy template for one tier. At most one
// template per tier is stored; a missing row falls back to the compiled-in
// tier default.
type PolicyTemplate struct {
	Tier      PermissionTier `gorm:"column:tier;type:text;primaryKey" json:"tier"`
	Name      string         `gorm:"column:name" json:"name"`
	Content   string         `gorm:"column:content" json:"content"`
	Variables StringList     `gorm:"column:variables;type:jsonb" json:"variables"`
	Version   string         `gorm:"column:version" json:"version"`
}

func (PolicyTemplate) TableName() string {
	return "policy_templates"
}
