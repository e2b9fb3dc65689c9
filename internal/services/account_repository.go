package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// AccountRepository is a role-scoped view over the canonical accounts table.
// One implementation per role variant, selected by enum instead of the
// historical string table-name dispatch.
type AccountRepository interface {
	FindActiveByUsername(username string) (*models.Account, error)
	FindByID(id uint) (*models.Account, error)
	Count() (int64, error)
}

type roleRepository struct {
	db   *gorm.DB
	role models.Role

	// level scopes supervisor lookups; zero matches any level.
	level int
}

// RepositoryFor returns the repository for a role.
func RepositoryFor(db *gorm.DB, role models.Role) AccountRepository {
	return &roleRepository{db: db, role: role}
}

// SupervisorRepository returns a supervisor repository restricted to a
// numeric level.
func SupervisorRepository(db *gorm.DB, level int) AccountRepository {
	return &roleRepository{db: db, role: models.RoleSupervisor, level: level}
}

func (r *roleRepository) scope() *gorm.DB {
	q := r.db.Where("role = ?", r.role)
	if r.level > 0 {
		q = q.Where("supervisor_level = ?", r.level)
	}
	return q
}

func (r *roleRepository) FindActiveByUsername(username string) (*models.Account, error) {
	var account models.Account
	err := r.scope().Where("username = ? AND is_active = ?", username, true).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *roleRepository) FindByID(id uint) (*models.Account, error) {
	var account models.Account
	err := r.scope().First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *roleRepository) Count() (int64, error) {
	var count int64
	err := r.scope().Model(&models.Account{}).Count(&count).Error
	return count, err
}
