package domain

import (
	"time"

	"gorm.io/gorm"
)

type InternProfile struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Institution   string     `gorm:"type:varchar(255)" json:"institution"`
	PersonalEmail *string    `json:"personal_email,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	// เกณฑ์การประเมินจากสถาบันต้นทาง (JSON array)
	Criteria *string `gorm:"type:text" json:"criteria,omitempty"`

	gorm.Model
}
