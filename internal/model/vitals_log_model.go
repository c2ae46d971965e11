package model

import "time"

// VitalsLogEntry mirrors a successful vitals submission so the history view
// works without a round trip. Values are kept as entered.
type VitalsLogEntry struct {
	Seq              uint      `gorm:"primaryKey;autoIncrement"`
	Temperature      string    `gorm:"type:varchar(20)"`
	BloodPressure    string    `gorm:"type:varchar(20)"`
	HeartRate        string    `gorm:"type:varchar(20)"`
	OxygenSaturation string    `gorm:"type:varchar(20)"`
	Weight           string    `gorm:"type:varchar(20)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (VitalsLogEntry) TableName() string {
	return "vitals_log"
}
