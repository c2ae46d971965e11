package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptEntry is one row of the append-only conversation log. Seq is the
// insertion order; Id is the stable identifier handed to callers.
type TranscriptEntry struct {
	Seq       uint           `gorm:"primaryKey;autoIncrement"`
	Id        uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	Role      string         `gorm:"type:varchar(50);not null"`
	Content   string         `gorm:"type:text;not null"`
	Metadata  datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (TranscriptEntry) TableName() string {
	return "transcript_entries"
}

// EntryMetadata is the structured attachment serialized into
// TranscriptEntry.Metadata. An assistant entry carries at most one severity
// classification.
type EntryMetadata struct {
	Severity         int      `json:"severity,omitempty"`
	Context          string   `json:"context,omitempty"`
	DetectedSymptoms []string `json:"detected_symptoms,omitempty"`
	ImageRef         string   `json:"image_ref,omitempty"`
	Sentiment        string   `json:"sentiment,omitempty"`
}
