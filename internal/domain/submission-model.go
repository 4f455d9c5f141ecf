package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

type Form struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Fields    []FormField `gorm:"foreignKey:FormID" json:"fields,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type FormField struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FormID   uint   `gorm:"index;not null" json:"form_id"`
	Label    string `gorm:"type:varchar(255);not null" json:"label"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

type FormSubmission struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	FormID uint  `gorm:"index;not null" json:"form_id"`
	Form   *Form `gorm:"foreignKey:FormID" json:"form,omitempty"`
	// true = แบบกลุ่ม (answers มี students หลายคน)
	IsBulk     bool       `gorm:"not null;default:false" json:"is_bulk"`
	Answers    string     `gorm:"type:jsonb" json:"answers"`
	Status     string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	ReviewedBy *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	gorm.Model
}
