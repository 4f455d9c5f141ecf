package dto

type UpdateSubmissionStatusRequest struct {
	Status string `json:"status" validate:"required" example:"approved"`
}

type SubmissionResponse struct {
	ID          uint   `json:"id"`
	FormID      uint   `json:"form_id"`
	FormName    string `json:"form_name,omitempty"`
	IsBulk      bool   `json:"is_bulk"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
}

type ApprovalResult struct {
	Success     bool                `json:"success"`
	Application *SubmissionResponse `json:"application"`
	Message     string              `json:"message"`
	CreatedUser *string             `json:"createdUser,omitempty"`
	Import      *ImportResult       `json:"import,omitempty"`
}
