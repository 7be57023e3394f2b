package model

// Assessment pairs a component with a difficulty level. At most one assessment
// exists per (component, level).
// swagger:model Assessment
type Assessment struct {
	BaseModel
	ComponentID        uint `gorm:"not null;uniqueIndex:idx_component_level" json:"componentId"`
	Level              int  `gorm:"not null;uniqueIndex:idx_component_level" json:"level"`
	PassMarkPercentage int  `gorm:"not null;default:70" json:"passMarkPercentage"`
	NumberOfQuestions  int  `gorm:"not null;default:10" json:"numberOfQuestions"`
	CreatedBy          uint `json:"createdBy"`
}

func (Assessment) TableName() string {
	return "assessments"
}
