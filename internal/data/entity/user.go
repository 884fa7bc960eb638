package entity

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

type User struct {
	Base
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	FullName     *string    `db:"full_name"`
	Phone        *string    `db:"phone"`
	Role         UserRole   `db:"role"`
	Status       UserStatus `db:"status"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
