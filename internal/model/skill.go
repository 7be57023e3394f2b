package model

import "time"

// MaxSkillLevel caps how high a developer can level up on a component.
const MaxSkillLevel = 10

// SkillLevel is the highest assessment level a developer has ever passed for a
// component. CurrentLevel is monotonic non-decreasing.
// swagger:model SkillLevel
type SkillLevel struct {
	BaseModel
	DeveloperID   uint       `gorm:"not null;uniqueIndex:idx_developer_component" json:"developerId"`
	ComponentID   uint       `gorm:"not null;uniqueIndex:idx_developer_component" json:"componentId"`
	CurrentLevel  int        `gorm:"not null;default:0" json:"currentLevel"`
	LastLevelUpAt *time.Time `json:"lastLevelUpAt,omitempty"`
}

func (SkillLevel) TableName() string {
	return "skill_levels"
}

// TrajectoryEvent is an append-only level-up log entry, written atomically
// alongside each SkillLevel increase.
// swagger:model TrajectoryEvent
type TrajectoryEvent struct {
	BaseModel
	DeveloperID    uint      `gorm:"not null;index" json:"developerId"`
	ComponentID    uint      `gorm:"not null;index" json:"componentId"`
	LevelReached   int       `gorm:"not null" json:"levelReached"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	OccurredAt     time.Time `gorm:"not null" json:"occurredAt"`
}

func (TrajectoryEvent) TableName() string {
	return "trajectory_events"
}
