package dto

import "github.com/BruksfildServices01/clinic-scheduler/internal/models"

// DoctorDTO is what patients and admins see of a doctor.
type DoctorDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Category  string `json:"category"`
}

func NewDoctorDTO(u models.User) DoctorDTO {
	return DoctorDTO{
		ID:        u.ID,
		Name:      u.FullName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Telephone: u.Telephone,
		Category:  u.Category,
	}
}

func NewDoctorList(users []models.User) []DoctorDTO {
	out := make([]DoctorDTO, 0, len(users))
	for _, u := range users {
		out = append(out, NewDoctorDTO(u))
	}
	return out
}

type ProfileDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"`
	Telephone string `json:"telephone"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

func NewProfileDTO(u *models.User) ProfileDTO {
	return ProfileDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.FullName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		DOB:       u.DOB,
		Telephone: u.Telephone,
		Address:   u.Address,
		Role:      u.Role,
	}
}
