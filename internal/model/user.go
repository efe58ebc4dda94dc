package model

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Firstname string   `gorm:"size:100;not null" json:"firstname"`
	Lastname  string   `gorm:"size:100;not null" json:"lastname"`
	Username  string   `gorm:"size:100;unique;not null" json:"username"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	Role      UserRole `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	Faculty   string   `gorm:"size:150" json:"faculty"`
	Direction string   `gorm:"size:150" json:"direction"`
}

func (User) TableName() string {
	return "users"
}

// FullName is what appears on certificates.
func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
