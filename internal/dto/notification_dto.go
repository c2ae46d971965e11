package dto

type BackendNotificationDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}

type ListNotificationsResponse struct {
	Success bool                     `json:"success"`
	Error   string                   `json:"error,omitempty"`
	Data    []BackendNotificationDTO `json:"data"`
}

// UnreadCount is what the navbar badge and the periodic refresh care about.
func (r *ListNotificationsResponse) UnreadCount() int {
	count := 0
	for _, n := range r.Data {
		if !n.Read {
			count++
		}
	}
	return count
}

type SendWhatsAppRequest struct {
	To         string `json:"to"`
	Message    string `json:"message"`
	DoctorName string `json:"doctor_name,omitempty"`
}

type SendWhatsAppResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
