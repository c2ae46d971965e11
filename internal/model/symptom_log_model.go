package model

import "time"

// SymptomLogEntry is appended after each successful symptom analysis call.
// SeverityScore is the user's own 1-10 rating, not the backend triage level.
type SymptomLogEntry struct {
	Seq           uint      `gorm:"primaryKey;autoIncrement"`
	Symptoms      string    `gorm:"type:text;not null"`
	Duration      string    `gorm:"type:varchar(100)"`
	SeverityScore int       `gorm:"not null"`
	Analysis      string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (SymptomLogEntry) TableName() string {
	return "symptom_log"
}
