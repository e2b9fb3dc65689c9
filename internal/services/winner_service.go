package services

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// WinnerService publishes draw results. Posting requires a level-2
// supervisor or master; the listing is public.
type WinnerService struct {
	db *gorm.DB
}

func NewWinnerService(db *gorm.DB) *WinnerService {
	return &WinnerService{db: db}
}

func (s *WinnerService) Post(draw string, numbers datatypes.JSON, postedBy uint, tenantID *uint) (*models.Winner, error) {
	winner := &models.Winner{
		Draw:     draw,
		Numbers:  numbers,
		PostedBy: postedBy,
		TenantID: tenantID,
	}
	if err := s.db.Create(winner).Error; err != nil {
		return nil, err
	}
	return winner, nil
}

// Latest returns the most recent draw results, newest first.
func (s *WinnerService) Latest(limit int) ([]models.Winner, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var winners []models.Winner
	err := s.db.Order("created_at DESC").Limit(limit).Find(&winners).Error
	return winners, err
}
