package models

// Credentials is the payload of a login attempt.
type Credentials struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,utf8,min=1,max=128"`
}

// RegisterRequest is the payload of a self-service registration or an
// admin-created account.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,username"`
	Password string  `json:"password" validate:"required,min=8,max=128,strong_password"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
}

// ChangePasswordRequest is the payload of a password change by an
// authenticated user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,utf8,max=128"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128,strong_password,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// LoginResult is returned by a successful login or password change.
type LoginResult struct {
	User    User
	Session Session
}
