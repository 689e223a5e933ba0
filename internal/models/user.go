package models

import "time"

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	DOB       string `gorm:"size:10" json:"dob"`
	Telephone string `gorm:"size:30" json:"telephone"`
	Address   string `gorm:"size:255" json:"address,omitempty"`

	Role     string `gorm:"size:20;not null;index" json:"role"`
	Category string `gorm:"size:50;index" json:"category,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
