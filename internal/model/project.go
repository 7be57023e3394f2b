package model

// swagger:model Project
type Project struct {
	BaseModel
	TeamID      uint   `gorm:"not null;index" json:"teamId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
}

func (Project) TableName() string {
	return "projects"
}
