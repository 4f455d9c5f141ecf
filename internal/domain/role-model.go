package domain

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleMentor = "MENTOR"
	RoleIntern = "INTERN"
)

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:uidx_user_roles,unique;not null" json:"user_id"`
	RoleID    uint      `gorm:"index:uidx_user_roles,unique;not null" json:"role_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
