package dto

import "time"

// CandidateRecord คือข้อมูลผู้สมัครหนึ่งคนที่ผ่านการ normalize มาแล้ว
// (จาก spreadsheet importer หรือจาก submission ที่อนุมัติ)
type CandidateRecord struct {
	FullName      string     `json:"full_name" validate:"required"`
	Email         string     `json:"email"`
	PersonalEmail *string    `json:"personal_email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Institution   string     `json:"institution"`
	DivisionID    *uint      `json:"division_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Criteria      []string   `json:"criteria,omitempty"`
}

type BulkImportRequest struct {
	DivisionIDs []uint            `json:"division_ids"`
	Candidates  []CandidateRecord `json:"candidates" validate:"required"`
}

type ImportedUser struct {
	UserID     uint   `json:"user_id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	DivisionID uint   `json:"division_id"`
	MentorID   *uint  `json:"mentor_id,omitempty"`
}

type ImportResult struct {
	Success           bool           `json:"success"`
	Count             int            `json:"count"`
	ImportedUsers     []ImportedUser `json:"importedUsers"`
	Message           string         `json:"message"`
	SkippedExisting   []string       `json:"skippedExisting"`
	SkippedTrash      []string       `json:"skippedTrash"`
	SkippedNoCapacity []string       `json:"skippedNoCapacity"`
}
