package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// AccessCodeService manages terminal login codes: master generates and
// deactivates them, terminals log in with one and get bound to the first
// device that uses it.
type AccessCodeService struct {
	db *gorm.DB
}

func NewAccessCodeService(db *gorm.DB) *AccessCodeService {
	return &AccessCodeService{db: db}
}

// Generate creates a new active code. The code value is an uppercase short
// form of a UUID, unique by construction and index.
func (s *AccessCodeService) Generate(codeType string, tenantID *uint) (*models.AccessCode, error) {
	if codeType == "" {
		codeType = "terminal"
	}
	code := &models.AccessCode{
		Code:     strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10]),
		Type:     codeType,
		TenantID: tenantID,
		IsActive: true,
	}
	if err := s.db.Create(code).Error; err != nil {
		return nil, err
	}
	return code, nil
}

func (s *AccessCodeService) List() ([]models.AccessCode, error) {
	var codes []models.AccessCode
	err := s.db.Order("created_at DESC").Find(&codes).Error
	return codes, err
}

func (s *AccessCodeService) Deactivate(code string) error {
	result := s.db.Model(&models.AccessCode{}).Where("code = ?", code).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TerminalLogin redeems a code for a device: stamps last_used, binds the
// device id and upserts the terminal row.
func (s *AccessCodeService) TerminalLogin(codeValue, deviceID string) (*models.AccessCode, *models.Terminal, error) {
	var code models.AccessCode
	err := s.db.Where("code = ? AND is_active = ?", codeValue, true).First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	now := time.Now()
	err = s.db.Model(&code).Updates(map[string]interface{}{
		"device_id": deviceID,
		"last_used": now,
	}).Error
	if err != nil {
		return nil, nil, err
	}

	var terminal models.Terminal
	err = s.db.Where(models.Terminal{DeviceID: deviceID}).
		Assign(map[string]interface{}{
			"status":    "connected",
			"last_seen": now,
			"agent_id":  code.AgentID,
			"tenant_id": code.TenantID,
		}).
		FirstOrCreate(&terminal).Error
	if err != nil {
		return nil, nil, err
	}

	return &code, &terminal, nil
}
