package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a JSON array of strings in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Question is one entry of the exam question bank. Every question belongs
// to a material and carries its full option list plus the correct answer;
// the correct answer never leaves the server in student-facing payloads.
//
// swagger:model Question
type Question struct {
	BaseModel
	MaterialID    uint       `gorm:"index;not null" json:"materialId"`
	Content       string     `gorm:"type:text;not null" json:"question"`
	Options       StringList `gorm:"type:json;not null" json:"options"`
	CorrectAnswer string     `gorm:"size:512;not null" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
