package domain

import "time"

// AdmissionArchive เก็บประวัติการรับเข้าหนึ่งรายการต่อหนึ่ง submission ที่อนุมัติ
type AdmissionArchive struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubmissionID uint       `gorm:"index;not null" json:"submission_id"`
	DisplayName  string     `gorm:"type:varchar(255);not null" json:"display_name"`
	Emails       string     `gorm:"type:text;not null" json:"emails"`
	Institution  string     `gorm:"type:varchar(255)" json:"institution"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	// raw answers snapshot สำหรับ recovery
	RawAnswers string    `gorm:"type:jsonb" json:"raw_answers"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
