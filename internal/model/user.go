package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleWaiter  Role = "waiter"
	RoleChef    Role = "chef"
	RoleCashier Role = "cashier"
)

var Roles = []Role{RoleAdmin, RoleWaiter, RoleChef, RoleCashier}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleChef, RoleCashier:
		return true
	}
	return false
}

type User struct {
	BaseModel
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	FirstName    string `db:"first_name" json:"firstName"`
	LastName     string `db:"last_name" json:"lastName"`
	Role         Role   `db:"role" json:"role"`
	IsActive     bool   `db:"is_active" json:"isActive"`
}
