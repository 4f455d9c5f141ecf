package services

import (
	"errors"
	"testing"
	"time"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/SundayYogurt/intern_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingSubmission(id uint, isBulk bool, answers string) *domain.FormSubmission {
	sub := &domain.FormSubmission{
		ID:      id,
		FormID:  1,
		IsBulk:  isBulk,
		Answers: answers,
		Status:  domain.SubmissionStatusPending,
		Form: &domain.Form{
			ID:   1,
			Name: "Internship Application",
			Fields: []domain.FormField{
				{ID: 11, Label: "Full Name"},
				{ID: 12, Label: "Email"},
				{ID: 13, Label: "Institution"},
				{ID: 14, Label: "Division"},
			},
		},
	}
	sub.CreatedAt = time.Now()
	return sub
}

func newApprovalFixture(sub *domain.FormSubmission) (*fakeSubmissionRepo, *fakeArchiveRepo, *fakeImportService, ApprovalService) {
	subRepo := &fakeSubmissionRepo{subs: map[uint]*domain.FormSubmission{}}
	if sub != nil {
		subRepo.subs[sub.ID] = sub
	}
	archiveRepo := &fakeArchiveRepo{}
	importSvc := &fakeImportService{}
	divisionRepo := &fakeDivisionRepo{
		capacities: []repository.DivisionCapacity{capOf(7, 5, 0)},
		byName:     map[string]domain.Division{"Engineering": {ID: 7, Capacity: 5}},
	}
	svc := NewApprovalService(subRepo, archiveRepo, divisionRepo, importSvc)
	return subRepo, archiveRepo, importSvc, svc
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	subRepo, archiveRepo, importSvc, svc := newApprovalFixture(
		pendingSubmission(1, false, `{"11":"A","12":"a@x.com"}`),
	)

	_, err := svc.UpdateStatus(1, 1, "pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(1, 1, "banana")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.Empty(t, subRepo.saved)
	assert.Empty(t, archiveRepo.records)
	assert.Empty(t, importSvc.calls)
}

func TestUpdateStatusAlreadyReviewed(t *testing.T) {
	sub := pendingSubmission(1, false, `{}`)
	sub.Status = domain.SubmissionStatusApproved
	_, _, _, svc := newApprovalFixture(sub)

	_, err := svc.UpdateStatus(1, 1, "approved")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestUpdateStatusRejectHasNoSideEffects(t *testing.T) {
	sub := pendingSubmission(1, true, `{"students":[{"11":"A","12":"a@x.com"}]}`)
	subRepo, archiveRepo, importSvc, svc := newApprovalFixture(sub)

	result, err := svc.UpdateStatus(5, 1, "rejected")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, domain.SubmissionStatusRejected, sub.Status)
	require.NotNil(t, sub.ReviewedBy)
	assert.Equal(t, uint(5), *sub.ReviewedBy)
	require.Len(t, subRepo.saved, 1)

	// ปฏิเสธแล้วห้ามมี account/archive เกิดขึ้นเด็ดขาด
	assert.Empty(t, importSvc.calls)
	assert.Empty(t, archiveRepo.records)
	assert.Nil(t, result.CreatedUser)
}

func TestUpdateStatusApproveSingle(t *testing.T) {
	sub := pendingSubmission(1, false,
		`{"11":"Somchai Jaidee","12":"somchai@example.com","13":"CU","14":"Engineering"}`)
	_, archiveRepo, importSvc, svc := newApprovalFixture(sub)

	result, err := svc.UpdateStatus(5, 1, "approved")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, domain.SubmissionStatusApproved, sub.Status)

	require.Len(t, importSvc.calls, 1)
	candidates := importSvc.calls[0].Candidates
	require.Len(t, candidates, 1)
	assert.Equal(t, "somchai@example.com", candidates[0].Email)
	require.NotNil(t, candidates[0].DivisionID)
	assert.Equal(t, uint(7), *candidates[0].DivisionID)

	require.NotNil(t, result.CreatedUser)
	assert.Equal(t, "somchai@example.com", *result.CreatedUser)

	require.Len(t, archiveRepo.records, 1)
	rec := archiveRepo.records[0]
	assert.Equal(t, uint(1), rec.SubmissionID)
	assert.Equal(t, "Somchai Jaidee", rec.DisplayName)
	assert.Equal(t, "somchai@example.com", rec.Emails)
	assert.Equal(t, sub.Answers, rec.RawAnswers)
}

func TestUpdateStatusApproveBulkDeduplicates(t *testing.T) {
	// 3 คนใน batch แต่มีอีเมลซ้ำกัน 1 → เหลือ 2 คนก่อนเข้า allocator
	sub := pendingSubmission(2, true, `{"students":[
		{"11":"A","12":"a@x.com"},
		{"11":"B","12":"b@x.com"},
		{"11":"A2","12":"A@X.com"}
	]}`)
	_, archiveRepo, importSvc, svc := newApprovalFixture(sub)

	result, err := svc.UpdateStatus(5, 2, "approved")
	require.NoError(t, err)

	require.Len(t, importSvc.calls, 1)
	assert.Len(t, importSvc.calls[0].Candidates, 2)

	require.NotNil(t, result.CreatedUser)
	assert.Equal(t, "2 Students (Batch): a@x.com, b@x.com", *result.CreatedUser)

	require.Len(t, archiveRepo.records, 1)
	assert.Equal(t, "2 Students (Batch)", archiveRepo.records[0].DisplayName)
	assert.Equal(t, "a@x.com, b@x.com", archiveRepo.records[0].Emails)
}

func TestUpdateStatusApproveDegradedOnImportFailure(t *testing.T) {
	sub := pendingSubmission(3, false, `{"11":"A","12":"a@x.com"}`)
	subRepo, archiveRepo, importSvc, svc := newApprovalFixture(sub)
	importSvc.err = errors.New("db down")

	result, err := svc.UpdateStatus(5, 3, "approved")
	require.NoError(t, err)

	// สถานะ approved ถูกบันทึกไปแล้ว ไม่ rollback แจ้งให้ไปสร้างเองแทน
	assert.Equal(t, domain.SubmissionStatusApproved, sub.Status)
	require.Len(t, subRepo.saved, 1)
	assert.Contains(t, result.Message, "manually")
	assert.Empty(t, archiveRepo.records)
}

func TestUpdateStatusApproveEmptyAnswers(t *testing.T) {
	// answers ว่าง ๆ ห้ามกลายเป็น account ปลอมจากอีเมล synthesize
	sub := pendingSubmission(7, false, `{}`)
	_, archiveRepo, importSvc, svc := newApprovalFixture(sub)

	result, err := svc.UpdateStatus(5, 7, "approved")
	require.NoError(t, err)

	assert.Equal(t, domain.SubmissionStatusApproved, sub.Status)
	assert.Contains(t, result.Message, "manually")
	assert.Empty(t, importSvc.calls)
	assert.Empty(t, archiveRepo.records)
	assert.Nil(t, result.CreatedUser)
}

func TestUpdateStatusApproveUnparseableAnswers(t *testing.T) {
	sub := pendingSubmission(4, false, `not-json`)
	_, archiveRepo, importSvc, svc := newApprovalFixture(sub)

	result, err := svc.UpdateStatus(5, 4, "approved")
	require.NoError(t, err)

	assert.Equal(t, domain.SubmissionStatusApproved, sub.Status)
	assert.Contains(t, result.Message, "manually")
	assert.Empty(t, importSvc.calls)
	assert.Empty(t, archiveRepo.records)
}

func TestUpdateStatusApproveArchiveFailureWarns(t *testing.T) {
	sub := pendingSubmission(6, false, `{"11":"A","12":"a@x.com"}`)
	_, archiveRepo, _, svc := newApprovalFixture(sub)
	archiveRepo.createErr = errors.New("disk full")

	result, err := svc.UpdateStatus(5, 6, "approved")
	require.NoError(t, err)

	assert.Contains(t, result.Message, "archive")
	assert.Equal(t, domain.SubmissionStatusApproved, sub.Status)
}

func TestListPending(t *testing.T) {
	sub := pendingSubmission(1, false, `{}`)
	subRepo, _, _, svc := newApprovalFixture(sub)
	subRepo.subs[2] = &domain.FormSubmission{ID: 2, Status: domain.SubmissionStatusApproved}

	out, err := svc.ListPending(10, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint(1), out[0].ID)
	assert.Equal(t, "Internship Application", out[0].FormName)
}
