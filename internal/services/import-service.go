package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/SundayYogurt/intern_service/internal/dto"
	"github.com/SundayYogurt/intern_service/internal/helper"
	"github.com/SundayYogurt/intern_service/internal/interfaces"
	"github.com/SundayYogurt/intern_service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// รหัสผ่านเริ่มต้นของ account ที่สร้างจาก pipeline แจ้ง admin ผ่าน message
const DefaultInternPassword = "intern1234"

var (
	ErrNoCandidates    = errors.New("no candidate data to import")
	ErrNoValidDivision = errors.New("no valid division for import")
	ErrMissingEmail    = errors.New("candidate has no email")
)

type ImportService interface {
	BulkImport(adminID uint, input dto.BulkImportRequest) (*dto.ImportResult, error)
}

type importService struct {
	userRepo     repository.UserRepository
	divisionRepo repository.DivisionRepository
	roleRepo     repository.RoleRepository
	auditRepo    repository.AuditRepository
	producer     interfaces.ProducerHandler
}

func NewImportService(
	userRepo repository.UserRepository,
	divisionRepo repository.DivisionRepository,
	roleRepo repository.RoleRepository,
	auditRepo repository.AuditRepository,
	producer interfaces.ProducerHandler,
) ImportService {
	return &importService{
		userRepo:     userRepo,
		divisionRepo: divisionRepo,
		roleRepo:     roleRepo,
		auditRepo:    auditRepo,
		producer:     producer,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// dedupeCandidates ตัดคนซ้ำใน batch เดียวกัน (อีเมลเดียวกัน เอาคนแรก)
func dedupeCandidates(candidates []dto.CandidateRecord) []dto.CandidateRecord {
	seen := make(map[string]bool, len(candidates))
	unique := make([]dto.CandidateRecord, 0, len(candidates))

	for _, c := range candidates {
		key := emailKey(c.Email)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}

func (s *importService) BulkImport(adminID uint, input dto.BulkImportRequest) (*dto.ImportResult, error) {
	if len(input.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	for _, c := range input.Candidates {
		if emailKey(c.Email) == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingEmail, strings.TrimSpace(c.FullName))
		}
	}

	unique := dedupeCandidates(input.Candidates)

	// ----- Dedup against the store (ยิง query เดียว) -----
	keys := make([]string, 0, len(unique))
	for _, c := range unique {
		keys = append(keys, emailKey(c.Email))
	}

	existing, err := s.userRepo.FindByEmails(keys)
	if err != nil {
		return nil, err
	}

	activeByEmail := make(map[string]domain.User)
	trashedByEmail := make(map[string]domain.User)
	for _, u := range existing {
		key := emailKey(u.Email)
		if u.Status == domain.UserStatusTrashed {
			trashedByEmail[key] = u
		} else {
			activeByEmail[key] = u
		}
	}

	result := &dto.ImportResult{
		ImportedUsers:     []dto.ImportedUser{},
		SkippedExisting:   []string{},
		SkippedTrash:      []string{},
		SkippedNoCapacity: []string{},
	}

	fresh := make([]dto.CandidateRecord, 0, len(unique))
	for _, c := range unique {
		key := emailKey(c.Email)
		if u, ok := activeByEmail[key]; ok {
			result.SkippedExisting = append(result.SkippedExisting, u.Email)
			continue
		}
		if u, ok := trashedByEmail[key]; ok {
			result.SkippedTrash = append(result.SkippedTrash, u.Email)
			continue
		}
		fresh = append(fresh, c)
	}

	if len(fresh) == 0 {
		result.Success = false
		result.Message = s.composeMessage(result)
		return result, nil
	}

	// ----- Capacity ledger -----
	divisionIDs := make([]uint, 0, len(input.DivisionIDs))
	seenDivision := make(map[uint]bool)
	for _, id := range input.DivisionIDs {
		if id != 0 && !seenDivision[id] {
			seenDivision[id] = true
			divisionIDs = append(divisionIDs, id)
		}
	}
	for _, c := range fresh {
		if c.DivisionID != nil && *c.DivisionID != 0 && !seenDivision[*c.DivisionID] {
			seenDivision[*c.DivisionID] = true
			divisionIDs = append(divisionIDs, *c.DivisionID)
		}
	}

	capacities, err := s.divisionRepo.FindWithOccupancy(divisionIDs)
	if err != nil {
		log.Printf("find divisions with occupancy error: %v", err)
		return nil, errors.New("failed to load divisions")
	}
	if len(capacities) == 0 {
		return nil, ErrNoValidDivision
	}

	pool := newSlotPool(capacities)

	// ----- Slot allocation -----
	assignments, noCapacity := allocateSlots(pool, fresh)
	for _, c := range noCapacity {
		result.SkippedNoCapacity = append(result.SkippedNoCapacity, emailKey(c.Email))
	}

	if len(assignments) == 0 {
		result.Success = false
		result.Message = s.composeMessage(result)
		return result, nil
	}

	// ----- Batch commit (transaction เดียว) -----
	internRole, err := s.roleRepo.FindByCode(domain.RoleIntern)
	if err != nil {
		log.Printf("find intern role error: %v", err)
		return nil, errors.New("intern role is not seeded")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(DefaultInternPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash default password")
	}

	now := time.Now()
	users := make([]*domain.User, 0, len(assignments))
	profiles := make([]*domain.InternProfile, 0, len(assignments))
	for _, a := range assignments {
		divisionID := a.divisionID
		admittedAt := now
		users = append(users, &domain.User{
			Email:        emailKey(a.candidate.Email),
			PasswordHash: string(passwordHash),
			FullName:     strings.TrimSpace(a.candidate.FullName),
			Phone:        a.candidate.Phone,
			Status:       domain.UserStatusActive,
			DivisionID:   &divisionID,
			MentorID:     a.mentorID,
			AdmittedAt:   &admittedAt,
		})
		profiles = append(profiles, internProfileFor(a.candidate))
	}

	if err := s.userRepo.CreateBatchTx(users, profiles, internRole.ID); err != nil {
		if helper.IsDuplicateKey(err) {
			// แพ้ race กับ import อีกตัว
			return nil, errors.New("email already exists (concurrent import)")
		}
		log.Printf("batch create interns error: %v", err)
		return nil, errors.New("failed to create intern accounts")
	}

	for i, u := range users {
		result.ImportedUsers = append(result.ImportedUsers, dto.ImportedUser{
			UserID:     u.ID,
			Email:      u.Email,
			FullName:   u.FullName,
			DivisionID: assignments[i].divisionID,
			MentorID:   assignments[i].mentorID,
		})
	}
	result.Success = true
	result.Count = len(result.ImportedUsers)
	result.Message = s.composeMessage(result)

	s.recordAudit(adminID, result)
	s.publishImported(result)

	return result, nil
}

func internProfileFor(c dto.CandidateRecord) *domain.InternProfile {
	profile := &domain.InternProfile{
		Institution:   strings.TrimSpace(c.Institution),
		PersonalEmail: c.PersonalEmail,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
	}
	if len(c.Criteria) > 0 {
		joined := strings.Join(c.Criteria, "\n")
		profile.Criteria = &joined
	}
	return profile
}

func (s *importService) composeMessage(r *dto.ImportResult) string {
	var parts []string

	if r.Count > 0 {
		parts = append(parts, fmt.Sprintf("Imported %d interns (default password: %s)", r.Count, DefaultInternPassword))
	} else {
		parts = append(parts, "No new interns were imported")
	}
	if len(r.SkippedExisting) > 0 {
		parts = append(parts, fmt.Sprintf("%d already active: %s", len(r.SkippedExisting), strings.Join(r.SkippedExisting, ", ")))
	}
	if len(r.SkippedTrash) > 0 {
		parts = append(parts, fmt.Sprintf("%d in trash: %s", len(r.SkippedTrash), strings.Join(r.SkippedTrash, ", ")))
	}
	if len(r.SkippedNoCapacity) > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped, no free capacity: %s", len(r.SkippedNoCapacity), strings.Join(r.SkippedNoCapacity, ", ")))
	}

	return strings.Join(parts, ". ")
}

func (s *importService) recordAudit(adminID uint, r *dto.ImportResult) {
	if s.auditRepo == nil {
		return
	}
	note := r.Message
	entry := &domain.AuditLog{
		ActorID: adminID,
		Action:  "bulk_import_interns",
		Entity:  "user",
		Note:    &note,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		log.Printf("write audit log error: %v", err)
	}
}

func (s *importService) publishImported(r *dto.ImportResult) {
	if s.producer == nil || r.Count == 0 {
		return
	}

	emails := make([]string, 0, len(r.ImportedUsers))
	for _, u := range r.ImportedUsers {
		emails = append(emails, u.Email)
	}
	payload := fmt.Sprintf(`{"count":%d,"emails":"%s"}`, r.Count, strings.Join(emails, ","))
	_ = s.producer.PublishMessage([]byte("intern.imported"), []byte(payload))
}
