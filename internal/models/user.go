package models

// Role is the capability level carried by a user's session
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// User represents the users table
// DB: users
type User struct {
	BaseModel
	Email    string `gorm:"column:email;size:255;not null;uniqueIndex:users_email_key" json:"email"`
	Name     string `gorm:"column:name;size:100" json:"name"`
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	Role     Role   `gorm:"column:role;size:20;not null;default:CUSTOMER" json:"role"`
}

func (User) TableName() string {
	return "users"
}
