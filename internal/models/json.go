package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Labels is a list of free text labels (course tags, user achievements) stored as a JSON column
type Labels []string

// Value encodes the labels as a JSON array, never null
func (l Labels) Value() (driver.Value, error) {
	if l == nil {
		l = Labels{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b).Value()
}

// Scan decodes a JSON array column
func (l *Labels) Scan(value interface{}) error {
	if value == nil {
		*l = Labels{}
		return nil
	}

	var raw datatypes.JSON
	if err := raw.Scan(value); err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = Labels{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// GormDBDataType ensures the correct data type is used for each database driver.
// MSSQL does not support the 'json' data type.
func (Labels) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
