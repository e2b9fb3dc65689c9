package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// activeTerminalWindow is how recently a terminal must have been seen to
// count as active.
const activeTerminalWindow = 5 * time.Minute

// TerminalService tracks point-of-sale devices and their heartbeats.
type TerminalService struct {
	db *gorm.DB
}

func NewTerminalService(db *gorm.DB) *TerminalService {
	return &TerminalService{db: db}
}

// List returns all terminals, most recently seen first.
func (s *TerminalService) List() ([]models.Terminal, error) {
	var terminals []models.Terminal
	err := s.db.Order("last_seen DESC").Find(&terminals).Error
	return terminals, err
}

// Heartbeat stamps last_seen for a device.
func (s *TerminalService) Heartbeat(deviceID string) error {
	result := s.db.Model(&models.Terminal{}).Where("device_id = ?", deviceID).
		Updates(map[string]interface{}{
			"status":    "connected",
			"last_seen": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveCount counts terminals seen within the active window.
func (s *TerminalService) ActiveCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Terminal{}).
		Where("last_seen > ?", time.Now().Add(-activeTerminalWindow)).
		Count(&count).Error
	return count, err
}
