package models

import "time"

// SettingType hints how a setting value should be rendered and parsed.
type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeNumber  SettingType = "number"
	SettingTypeBoolean SettingType = "boolean"
)

// Valid reports whether the type hint is known.
func (t SettingType) Valid() bool {
	switch t {
	case SettingTypeString, SettingTypeNumber, SettingTypeBoolean:
		return true
	}
	return false
}

// Setting is a department-scoped key/value pair used for portal
// configuration (office hours, helpline numbers, fee defaults).
type Setting struct {
	ID         string      `db:"id" json:"id"`
	Department Department  `db:"department" json:"department"`
	Key        string      `db:"key" json:"key"`
	Value      string      `db:"value" json:"value"`
	Type       SettingType `db:"type" json:"type"`
	UpdatedBy  string      `db:"updated_by" json:"updated_by"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}
