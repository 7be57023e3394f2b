package service

import (
	"time"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SkillService is the leveling engine. A developer's skill on a component is
// the highest assessment level they have ever passed; it never decreases.
type SkillService struct {
	SkillRepo *repository.SkillRepository
	DB        *gorm.DB
}

func NewSkillService(skillRepo *repository.SkillRepository, db *gorm.DB) *SkillService {
	return &SkillService{
		SkillRepo: skillRepo,
		DB:        db,
	}
}

// RecordOutcome applies a resolved attempt outcome to the ledger. It must run
// inside the caller's transaction so the level update and trajectory event
// commit atomically with the attempt resolution.
//
// The monotonic max is a conditional update (current_level < target) plus a
// create-if-absent guarded by the unique (developer, component) index, so
// concurrent outcomes serialize without row locks.
func (s *SkillService) RecordOutcome(tx *gorm.DB, developerID, componentID uint, level, score, totalQuestions int, passed bool) error {
	if !passed {
		return nil
	}
	if level > model.MaxSkillLevel {
		level = model.MaxSkillLevel
	}

	now := time.Now()
	leveledUp := false

	res := tx.Model(&model.SkillLevel{}).
		Where("developer_id = ? AND component_id = ? AND current_level < ?", developerID, componentID, level).
		Updates(map[string]interface{}{"current_level": level, "last_level_up_at": now})
	if res.Error != nil {
		return res.Error
	}
	leveledUp = res.RowsAffected > 0

	if !leveledUp {
		var count int64
		if err := tx.Model(&model.SkillLevel{}).
			Where("developer_id = ? AND component_id = ?", developerID, componentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			// Already at this level or higher; the pass stays in attempt
			// history but leaves the ledger untouched.
			return nil
		}

		skill := &model.SkillLevel{
			DeveloperID:   developerID,
			ComponentID:   componentID,
			CurrentLevel:  level,
			LastLevelUpAt: &now,
		}
		if err := tx.Create(skill).Error; err != nil {
			// Lost the creation race; retry the conditional update once.
			res = tx.Model(&model.SkillLevel{}).
				Where("developer_id = ? AND component_id = ? AND current_level < ?", developerID, componentID, level).
				Updates(map[string]interface{}{"current_level": level, "last_level_up_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
		}
		leveledUp = true
	}

	event := &model.TrajectoryEvent{
		DeveloperID:    developerID,
		ComponentID:    componentID,
		LevelReached:   level,
		Score:          score,
		TotalQuestions: totalQuestions,
		OccurredAt:     now,
	}
	if err := tx.Create(event).Error; err != nil {
		return err
	}

	logger.Log.Info("skill level up",
		zap.Uint("developerId", developerID),
		zap.Uint("componentId", componentID),
		zap.Int("level", level),
	)
	return nil
}

// CurrentLevel returns the ledger level for a pair, defaulting to 0 when the
// developer has never passed an assessment on the component.
func (s *SkillService) CurrentLevel(developerID, componentID uint) (int, error) {
	skill, err := s.SkillRepo.FindByDeveloperAndComponent(developerID, componentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return skill.CurrentLevel, nil
}
