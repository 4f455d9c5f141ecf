package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/SundayYogurt/intern_service/internal/dto"
	"github.com/SundayYogurt/intern_service/internal/repository"
)

var (
	ErrInvalidStatus   = errors.New("status must be approved or rejected")
	ErrAlreadyReviewed = errors.New("submission is not pending")
)

type ApprovalService interface {
	UpdateStatus(adminID uint, submissionID uint, status string) (*dto.ApprovalResult, error)
	ListPending(limit, offset int) ([]dto.SubmissionResponse, error)
}

type approvalService struct {
	submissionRepo repository.SubmissionRepository
	archiveRepo    repository.ArchiveRepository
	divisionRepo   repository.DivisionRepository
	importSvc      ImportService
}

func NewApprovalService(
	submissionRepo repository.SubmissionRepository,
	archiveRepo repository.ArchiveRepository,
	divisionRepo repository.DivisionRepository,
	importSvc ImportService,
) ApprovalService {
	return &approvalService{
		submissionRepo: submissionRepo,
		archiveRepo:    archiveRepo,
		divisionRepo:   divisionRepo,
		importSvc:      importSvc,
	}
}

func toSubmissionResponse(sub *domain.FormSubmission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:          sub.ID,
		FormID:      sub.FormID,
		IsBulk:      sub.IsBulk,
		Status:      sub.Status,
		SubmittedAt: sub.CreatedAt.Format(time.RFC3339),
	}
	if sub.Form != nil {
		resp.FormName = sub.Form.Name
	}
	return resp
}

func (s *approvalService) ListPending(limit, offset int) ([]dto.SubmissionResponse, error) {
	subs, err := s.submissionRepo.ListPending(limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, *toSubmissionResponse(&subs[i]))
	}
	return out, nil
}

func (s *approvalService) UpdateStatus(adminID uint, submissionID uint, status string) (*dto.ApprovalResult, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case domain.SubmissionStatusApproved, domain.SubmissionStatusRejected:
	default:
		// กันก่อนแตะอะไรทั้งนั้น
		return nil, ErrInvalidStatus
	}

	sub, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, errors.New("submission not found")
	}
	if sub.Status != domain.SubmissionStatusPending {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	sub.Status = status
	sub.ReviewedBy = &adminID
	sub.ReviewedAt = &now
	if err := s.submissionRepo.Save(sub); err != nil {
		log.Printf("save submission %d error: %v", submissionID, err)
		return nil, errors.New("failed to update submission")
	}

	result := &dto.ApprovalResult{
		Success:     true,
		Application: toSubmissionResponse(sub),
	}

	if status == domain.SubmissionStatusRejected {
		result.Message = "submission rejected"
		return result, nil
	}

	// ----- Materialize: สถานะถูกบันทึกเป็น approved แล้ว ถ้าหลังจากนี้พังจะไม่ rollback -----
	candidates, err := s.materializeCandidates(sub)
	if err != nil {
		log.Printf("materialize submission %d error: %v", submissionID, err)
		result.Message = fmt.Sprintf("submission approved but account creation failed (%v) - please create the accounts manually", err)
		return result, nil
	}

	importResult, err := s.importSvc.BulkImport(adminID, dto.BulkImportRequest{Candidates: candidates})
	if err != nil {
		log.Printf("import for submission %d error: %v", submissionID, err)
		result.Message = fmt.Sprintf("submission approved but account creation failed (%v) - please create the accounts manually", err)
		return result, nil
	}
	result.Import = importResult

	createdEmails := make([]string, 0, len(importResult.ImportedUsers))
	for _, u := range importResult.ImportedUsers {
		createdEmails = append(createdEmails, u.Email)
	}

	var createdUser string
	var displayName string
	if sub.IsBulk {
		displayName = fmt.Sprintf("%d Students (Batch)", len(createdEmails))
		createdUser = displayName
		if len(createdEmails) > 0 {
			createdUser = displayName + ": " + strings.Join(createdEmails, ", ")
		}
	} else if len(importResult.ImportedUsers) > 0 {
		createdUser = importResult.ImportedUsers[0].Email
		displayName = importResult.ImportedUsers[0].FullName
	}
	if createdUser != "" {
		result.CreatedUser = &createdUser
	}

	if err := s.writeArchive(sub, candidates, displayName, createdEmails); err != nil {
		log.Printf("write archive for submission %d error: %v", submissionID, err)
		result.Message = importResult.Message + ". Warning: failed to write admission archive"
		return result, nil
	}

	result.Message = importResult.Message
	return result, nil
}

// materializeCandidates แกะ answers ของ submission ออกมาเป็น CandidateRecord
// ถ้าเป็น batch จะ extract แยกเป็นรายคนจาก students[]
func (s *approvalService) materializeCandidates(sub *domain.FormSubmission) ([]dto.CandidateRecord, error) {
	var answers map[string]any
	if err := json.Unmarshal([]byte(sub.Answers), &answers); err != nil {
		return nil, errors.New("submission answers are not valid JSON")
	}

	var fields []domain.FormField
	if sub.Form != nil {
		fields = sub.Form.Fields
	}

	var rawSets []map[string]any
	if sub.IsBulk {
		students, _ := answers["students"].([]any)
		if len(students) == 0 {
			return nil, errors.New("bulk submission has no students")
		}
		for _, item := range students {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			rawSets = append(rawSets, m)
		}
		if len(rawSets) == 0 {
			return nil, errors.New("bulk submission has no readable students")
		}
	} else {
		rawSets = append(rawSets, answers)
	}

	candidates := make([]dto.CandidateRecord, 0, len(rawSets))
	for _, raw := range rawSets {
		candidate, divisionRef := extractCandidate(raw, fields)
		// อีเมล synthesize ออกมาได้เสมอ ถ้าไม่มีชื่อด้วยแปลว่าแกะอะไรไม่ได้เลย
		// อย่าปั๊ม account ขยะจาก answers เปล่า ๆ
		if candidate.FullName == "" && strings.HasSuffix(candidate.Email, "@"+placeholderEmailDomain) {
			continue
		}
		if id := s.resolveDivision(divisionRef); id != nil {
			candidate.DivisionID = id
		}
		candidates = append(candidates, candidate)
	}
	if len(candidates) == 0 {
		return nil, errors.New("no candidate could be extracted from answers")
	}

	// กันคนซ้ำภายใน batch ก่อนเข้า allocator
	return dedupeCandidates(candidates), nil
}

// resolveDivision รับได้ทั้งเลข id และชื่อแผนก
func (s *approvalService) resolveDivision(ref string) *uint {
	ref = strings.TrimSpace(ref)
	if ref == "" || s.divisionRepo == nil {
		return nil
	}

	if n, err := strconv.ParseUint(ref, 10, 64); err == nil {
		id := uint(n)
		if _, err := s.divisionRepo.FindByID(id); err == nil {
			return &id
		}
		return nil
	}

	division, err := s.divisionRepo.FindByName(ref)
	if err != nil {
		return nil
	}
	return &division.ID
}

func (s *approvalService) writeArchive(
	sub *domain.FormSubmission,
	candidates []dto.CandidateRecord,
	displayName string,
	createdEmails []string,
) error {
	if displayName == "" {
		displayName = strings.TrimSpace(candidates[0].FullName)
	}

	rec := &domain.AdmissionArchive{
		SubmissionID: sub.ID,
		DisplayName:  displayName,
		Emails:       strings.Join(createdEmails, ", "),
		Institution:  strings.TrimSpace(candidates[0].Institution),
		StartDate:    candidates[0].StartDate,
		EndDate:      candidates[0].EndDate,
		RawAnswers:   sub.Answers,
	}
	return s.archiveRepo.Create(rec)
}
