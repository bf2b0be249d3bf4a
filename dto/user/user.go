package user

// UserRegisterDTO is the payload for POST /api/auth/register.
type UserRegisterDTO struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginDTO is the payload for POST /api/auth/login.
type UserLoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
