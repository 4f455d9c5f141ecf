package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	UserStatusActive  = "active"
	UserStatusTrashed = "trashed"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `gorm:"type:varchar(255)" json:"full_name"`
	Phone        *string    `json:"phone,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:active" json:"status"`
	DivisionID   *uint      `gorm:"index" json:"division_id,omitempty"`
	MentorID     *uint      `gorm:"index" json:"mentor_id,omitempty"`
	AdmittedAt   *time.Time `json:"admitted_at,omitempty"`
	gorm.Model
}
