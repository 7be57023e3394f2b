package model

type UserRole string

const (
	RoleRoot      UserRole = "root"
	RoleTeamAdmin UserRole = "team_admin"
	RoleDeveloper UserRole = "developer"
)

// swagger:model User
type User struct {
	BaseModel
	Email            string   `gorm:"size:100;unique;not null" json:"email"`
	Password         string   `gorm:"size:100" json:"-"`
	FullName         string   `gorm:"size:100;not null" json:"fullName"`
	Role             UserRole `gorm:"size:20;not null;default:'developer'" json:"role"`
	EmailVerified    bool     `gorm:"default:false" json:"emailVerified"`
	VerificationCode string   `gorm:"size:10" json:"-"`
	SecurityQuestion string   `gorm:"size:255" json:"-"`
	SecurityAnswer   string   `gorm:"size:100" json:"-"`
	Active           bool     `gorm:"default:true" json:"active"`
}

func (User) TableName() string {
	return "users"
}
