package model

// Component is a unit of a project with a tech stack; the subject of skill assessment.
// swagger:model Component
type Component struct {
	BaseModel
	ProjectID   uint   `gorm:"not null;index" json:"projectId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	TechStack   string `gorm:"size:100" json:"techStack"`
	Description string `gorm:"size:500" json:"description"`
}

func (Component) TableName() string {
	return "components"
}
