package dto

type ScheduleAppointmentRequest struct {
	UserID         string `json:"user_id"`
	Doctor         string `json:"doctor"`
	Specialization string `json:"specialization,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Reason         string `json:"reason,omitempty"`
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

type ScheduleAppointmentResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

type AppointmentDTO struct {
	ID             string `json:"id"`
	Doctor         string `json:"doctor"`
	Specialization string `json:"specialization,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Reason         string `json:"reason,omitempty"`
	Status         string `json:"status"`
}

type ListAppointmentsResponse struct {
	Success      bool             `json:"success"`
	Error        string           `json:"error,omitempty"`
	Appointments []AppointmentDTO `json:"appointments"`
}

type CancelAppointmentRequest struct {
	UserID        string `json:"user_id"`
	AppointmentID string `json:"appointment_id"`
}

type CancelAppointmentResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
