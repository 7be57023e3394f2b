package model

// swagger:model Team
type Team struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
}

func (Team) TableName() string {
	return "teams"
}
