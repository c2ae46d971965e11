package dto

type SaveDoctorRequest struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Specialization string `json:"specialization,omitempty"`
}

type SaveDoctorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type FamilyDoctorDTO struct {
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Specialization string `json:"specialization,omitempty"`
}

type GetDoctorResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Doctor  *FamilyDoctorDTO `json:"doctor,omitempty"`
}
