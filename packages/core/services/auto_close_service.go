package services

import (
	"log"
	"time"

	"core/models"

	"gorm.io/gorm"
)

// closingGrace is how long after a round's closing time a fight may keep
// running before the job completes it.
const closingGrace = 30 * time.Minute

type AutoCloseService struct {
	db *gorm.DB
}

func NewAutoCloseService(db *gorm.DB) *AutoCloseService {
	return &AutoCloseService{db: db}
}

// CloseOverdueFights completes every fight still in progress after its
// round's closing time. The round closing time becomes the stop time when
// the fight has none of its own.
func (s *AutoCloseService) CloseOverdueFights() error {
	overdue, err := s.findOverdueFights()
	if err != nil {
		log.Printf("Error finding overdue fights: %v", err)
		return err
	}

	if len(overdue) == 0 {
		log.Println("No overdue fights found")
		return nil
	}

	log.Printf("Found %d overdue fights to close", len(overdue))

	for _, fight := range overdue {
		log.Printf("Auto-closing fight ID %d (round %d)", fight.ID, fight.RoundID)

		updates := map[string]interface{}{"status": models.FightCompleted}
		if fight.StopTime == nil && fight.Round.ClosingTime != nil {
			updates["stop_time"] = *fight.Round.ClosingTime
		}

		if err := s.db.Model(&models.Fight{}).Where("id = ?", fight.ID).Updates(updates).Error; err != nil {
			log.Printf("Error auto-closing fight ID %d: %v", fight.ID, err)
			// Continue with other fights even if one fails
			continue
		}

		log.Printf("Successfully auto-closed fight ID %d", fight.ID)
	}

	return nil
}

// GetOverdueFightsCount returns the number of fights still in progress past
// their round's closing time.
func (s *AutoCloseService) GetOverdueFightsCount() (int64, error) {
	var count int64
	result := s.overdueQuery().Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *AutoCloseService) findOverdueFights() ([]models.Fight, error) {
	var fights []models.Fight
	result := s.overdueQuery().Preload("Round").Find(&fights)
	if result.Error != nil {
		return nil, result.Error
	}
	return fights, nil
}

func (s *AutoCloseService) overdueQuery() *gorm.DB {
	cutoff := time.Now().Add(-closingGrace)
	return s.db.Model(&models.Fight{}).
		Joins("JOIN tournament_rounds ON tournament_rounds.id = fights.round_id").
		Where("fights.status = ?", models.FightInProgress).
		Where("tournament_rounds.closing_time IS NOT NULL AND tournament_rounds.closing_time < ?", cutoff)
}
