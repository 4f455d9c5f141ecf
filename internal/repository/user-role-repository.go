package repository

import (
	"github.com/SundayYogurt/intern_service/internal/domain"
	"gorm.io/gorm"
)

type UserRoleRepository interface {
	GetRolesByUserID(userID uint) ([]domain.Role, error)
	AssignRole(userID uint, roleID uint) error
}

type userRoleRepository struct {
	db *gorm.DB
}

func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

func (u *userRoleRepository) GetRolesByUserID(userID uint) ([]domain.Role, error) {
	var roles []domain.Role

	err := u.db.
		Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (u *userRoleRepository) AssignRole(userID uint, roleID uint) error {
	return u.db.Create(&domain.UserRole{UserID: userID, RoleID: roleID}).Error
}
