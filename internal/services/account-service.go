package services

import (
	"errors"
	"strings"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/SundayYogurt/intern_service/internal/dto"
	"github.com/SundayYogurt/intern_service/internal/helper"
	"github.com/SundayYogurt/intern_service/internal/repository"
)

type AccountService interface {
	Login(input dto.UserLogin) (*domain.User, error)
	GetProfile(userID uint) (*domain.User, error)
	SetStatus(userID uint, status string) error
	IsAdmin(userID uint) (bool, error)

	CreateDivision(adminID uint, input dto.DivisionCreateRequest) error
	ListDivisions(limit, offset int) ([]domain.Division, error)
}

type accountService struct {
	repo         repository.UserRepository
	userRoleRepo repository.UserRoleRepository
	divisionRepo repository.DivisionRepository
	auth         helper.Auth
}

func NewAccountService(
	repo repository.UserRepository,
	userRoleRepo repository.UserRoleRepository,
	divisionRepo repository.DivisionRepository,
	auth helper.Auth,
) AccountService {
	return &accountService{
		repo:         repo,
		userRoleRepo: userRoleRepo,
		divisionRepo: divisionRepo,
		auth:         auth,
	}
}

func (a *accountService) Login(input dto.UserLogin) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, errors.New("invalid email or password")
	}

	user, err := a.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, errors.New("invalid email or password")
	}

	if user.Status != domain.UserStatusActive {
		return nil, errors.New("account is not active")
	}

	if err := a.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return user, nil
}

func (a *accountService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	user, err := a.repo.FindUserById(userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (a *accountService) SetStatus(userID uint, status string) error {
	if userID == 0 {
		return errors.New("invalid user_id")
	}

	status = strings.TrimSpace(strings.ToLower(status))
	switch status {
	case domain.UserStatusActive, domain.UserStatusTrashed:
	default:
		return errors.New("invalid status")
	}

	user, err := a.repo.FindUserById(userID)
	if err != nil || user == nil {
		return errors.New("user not found")
	}

	user.Status = status
	return a.repo.SaveUser(user)
}

func (a *accountService) IsAdmin(userID uint) (bool, error) {
	if userID == 0 {
		return false, errors.New("invalid user id")
	}

	roles, err := a.userRoleRepo.GetRolesByUserID(userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if strings.ToUpper(r.Code) == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (a *accountService) CreateDivision(adminID uint, input dto.DivisionCreateRequest) error {
	if adminID == 0 {
		return errors.New("unauthorized")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return errors.New("division name is required")
	}
	if input.Capacity < 0 {
		return errors.New("capacity must not be negative")
	}

	division := &domain.Division{
		Name:     name,
		Capacity: input.Capacity,
	}
	if err := a.divisionRepo.AddDivision(division); err != nil {
		if helper.IsDuplicateKey(err) {
			return errors.New("division already exists")
		}
		return err
	}
	return nil
}

func (a *accountService) ListDivisions(limit, offset int) ([]domain.Division, error) {
	return a.divisionRepo.List(limit, offset)
}
