package services

import (
	"errors"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/SundayYogurt/intern_service/internal/dto"
	"github.com/SundayYogurt/intern_service/internal/repository"
	"gorm.io/gorm"
)

// ---------- user repository ----------

type fakeUserRepo struct {
	existing []domain.User

	batchErr      error
	batchUsers    []*domain.User
	batchProfiles []*domain.InternProfile
	batchRoleID   uint
	nextID        uint
}

func (f *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for i := range f.existing {
		if f.existing[i].Email == email {
			return &f.existing[i], nil
		}
	}
	return nil, errors.New("failed to find user by email")
}

func (f *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	for i := range f.existing {
		if f.existing[i].ID == userID {
			return &f.existing[i], nil
		}
	}
	return nil, errors.New("failed to find user by ID")
}

func (f *fakeUserRepo) SaveUser(user *domain.User) error {
	return nil
}

func (f *fakeUserRepo) FindByEmails(emails []string) ([]domain.User, error) {
	want := make(map[string]bool, len(emails))
	for _, e := range emails {
		want[e] = true
	}

	var out []domain.User
	for _, u := range f.existing {
		if want[u.Email] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CreateBatchTx(users []*domain.User, profiles []*domain.InternProfile, roleID uint) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for i, u := range users {
		f.nextID++
		u.ID = f.nextID
		if profiles[i] != nil {
			profiles[i].UserID = u.ID
		}
	}
	f.batchUsers = users
	f.batchProfiles = profiles
	f.batchRoleID = roleID
	return nil
}

// ---------- division repository ----------

type fakeDivisionRepo struct {
	capacities []repository.DivisionCapacity
	byName     map[string]domain.Division

	occupancyCalls [][]uint
}

func (f *fakeDivisionRepo) FindByID(id uint) (*domain.Division, error) {
	for _, dc := range f.capacities {
		if dc.Division.ID == id {
			d := dc.Division
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDivisionRepo) FindByName(name string) (*domain.Division, error) {
	if d, ok := f.byName[name]; ok {
		return &d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDivisionRepo) List(limit, offset int) ([]domain.Division, error) {
	var out []domain.Division
	for _, dc := range f.capacities {
		out = append(out, dc.Division)
	}
	return out, nil
}

func (f *fakeDivisionRepo) AddDivision(division *domain.Division) error {
	return nil
}

func (f *fakeDivisionRepo) FindWithOccupancy(ids []uint) ([]repository.DivisionCapacity, error) {
	f.occupancyCalls = append(f.occupancyCalls, ids)

	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []repository.DivisionCapacity
	for _, dc := range f.capacities {
		if want[dc.Division.ID] {
			out = append(out, dc)
		}
	}
	return out, nil
}

// ---------- role repository ----------

type fakeRoleRepo struct{}

func (f *fakeRoleRepo) FindByCode(code string) (*domain.Role, error) {
	return &domain.Role{ID: 3, Code: code, Name: code}, nil
}

func (f *fakeRoleRepo) List(limit, offset int) ([]domain.Role, error) {
	return nil, nil
}

// ---------- audit repository ----------

type fakeAuditRepo struct {
	entries []*domain.AuditLog
}

func (f *fakeAuditRepo) Create(entry *domain.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

// ---------- producer ----------

type fakeProducer struct {
	keys   []string
	values []string
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.keys = append(f.keys, string(key))
	f.values = append(f.values, string(value))
	return nil
}

// ---------- submission repository ----------

type fakeSubmissionRepo struct {
	subs    map[uint]*domain.FormSubmission
	saved   []*domain.FormSubmission
	saveErr error
}

func (f *fakeSubmissionRepo) FindByID(id uint) (*domain.FormSubmission, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (f *fakeSubmissionRepo) Save(sub *domain.FormSubmission) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, sub)
	return nil
}

func (f *fakeSubmissionRepo) ListPending(limit, offset int) ([]domain.FormSubmission, error) {
	var out []domain.FormSubmission
	for _, sub := range f.subs {
		if sub.Status == domain.SubmissionStatusPending {
			out = append(out, *sub)
		}
	}
	return out, nil
}

// ---------- archive repository ----------

type fakeArchiveRepo struct {
	records   []*domain.AdmissionArchive
	createErr error
}

func (f *fakeArchiveRepo) Create(rec *domain.AdmissionArchive) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeArchiveRepo) FindBySubmissionID(submissionID uint) (*domain.AdmissionArchive, error) {
	for _, r := range f.records {
		if r.SubmissionID == submissionID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ---------- import service ----------

type fakeImportService struct {
	result *dto.ImportResult
	err    error

	calls []dto.BulkImportRequest
}

func (f *fakeImportService) BulkImport(adminID uint, input dto.BulkImportRequest) (*dto.ImportResult, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}

	imported := make([]dto.ImportedUser, 0, len(input.Candidates))
	for i, c := range input.Candidates {
		imported = append(imported, dto.ImportedUser{
			UserID:     uint(i + 1),
			Email:      c.Email,
			FullName:   c.FullName,
			DivisionID: 1,
		})
	}
	return &dto.ImportResult{
		Success:       true,
		Count:         len(imported),
		ImportedUsers: imported,
		Message:       "ok",
	}, nil
}
