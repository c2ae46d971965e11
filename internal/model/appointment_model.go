package model

import "time"

const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusPending   = "pending"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment is the local cache of a server-side booking. Rows are never
// deleted locally; cancel flips the status and a re-fetch replaces the whole
// set with server state.
type Appointment struct {
	Id             string    `gorm:"primaryKey"`
	Doctor         string    `gorm:"type:varchar(100);not null"`
	Specialization string    `gorm:"type:varchar(100)"`
	Date           string    `gorm:"type:varchar(20);not null"`
	Time           string    `gorm:"type:varchar(20);not null"`
	Reason         string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}
