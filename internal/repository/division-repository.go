package repository

import (
	"github.com/SundayYogurt/intern_service/internal/domain"
	"gorm.io/gorm"
)

// DivisionCapacity คือ snapshot ของแผนกหนึ่ง ณ ตอนเริ่ม pipeline:
// ความจุ จำนวนที่ใช้ไปแล้ว และรายชื่อพี่เลี้ยงเรียงตาม id
type DivisionCapacity struct {
	Division domain.Division
	Occupied int
	Mentors  []domain.User
}

type DivisionRepository interface {
	FindByID(id uint) (*domain.Division, error)
	FindByName(name string) (*domain.Division, error)
	List(limit, offset int) ([]domain.Division, error)
	AddDivision(division *domain.Division) error

	FindWithOccupancy(ids []uint) ([]DivisionCapacity, error)
}

type divisionRepository struct {
	db *gorm.DB
}

func NewDivisionRepository(db *gorm.DB) DivisionRepository {
	return &divisionRepository{db: db}
}

func (d *divisionRepository) FindByID(id uint) (*domain.Division, error) {
	var division domain.Division
	if err := d.db.First(&division, id).Error; err != nil {
		return nil, err
	}
	return &division, nil
}

func (d *divisionRepository) FindByName(name string) (*domain.Division, error) {
	var division domain.Division
	if err := d.db.First(&division, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, err
	}
	return &division, nil
}

func (d *divisionRepository) List(limit, offset int) ([]domain.Division, error) {
	var divisions []domain.Division

	err := d.db.Order("name ASC").Limit(limit).Offset(offset).Find(&divisions).Error
	if err != nil {
		return nil, err
	}
	return divisions, nil
}

func (d *divisionRepository) AddDivision(division *domain.Division) error {
	return d.db.Create(division).Error
}

func (d *divisionRepository) FindWithOccupancy(ids []uint) ([]DivisionCapacity, error) {
	var out []DivisionCapacity
	if len(ids) == 0 {
		return out, nil
	}

	var divisions []domain.Division
	if err := d.db.Where("id IN ?", ids).Order("id ASC").Find(&divisions).Error; err != nil {
		return nil, err
	}
	if len(divisions) == 0 {
		return out, nil
	}

	// นับเฉพาะ intern ที่ยัง active
	type occRow struct {
		DivisionID uint
		Cnt        int
	}
	var occ []occRow
	err := d.db.Model(&domain.User{}).
		Select("users.division_id AS division_id, COUNT(*) AS cnt").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.code = ? AND users.division_id IN ? AND users.status = ?",
			domain.RoleIntern, ids, domain.UserStatusActive).
		Group("users.division_id").
		Scan(&occ).Error
	if err != nil {
		return nil, err
	}
	occByDivision := make(map[uint]int, len(occ))
	for _, row := range occ {
		occByDivision[row.DivisionID] = row.Cnt
	}

	var mentors []domain.User
	err = d.db.Model(&domain.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.code = ? AND users.division_id IN ? AND users.status = ?",
			domain.RoleMentor, ids, domain.UserStatusActive).
		Order("users.id ASC").
		Find(&mentors).Error
	if err != nil {
		return nil, err
	}
	mentorsByDivision := make(map[uint][]domain.User)
	for _, m := range mentors {
		if m.DivisionID == nil {
			continue
		}
		mentorsByDivision[*m.DivisionID] = append(mentorsByDivision[*m.DivisionID], m)
	}

	for _, division := range divisions {
		out = append(out, DivisionCapacity{
			Division: division,
			Occupied: occByDivision[division.ID],
			Mentors:  mentorsByDivision[division.ID],
		})
	}
	return out, nil
}
