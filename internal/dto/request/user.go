package request

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName *string `json:"fullName,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role     string  `json:"role" validate:"required,oneof=CUSTOMER ADMIN"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"fullName,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=CUSTOMER ADMIN"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}
