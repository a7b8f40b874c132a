package models

// User represents a user in the database.
type User struct {
	Username  string `db:"username"`
	Password  string `db:"password"`
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Bio       string `db:"bio"`
	Location  string `db:"location"`
	IsAdmin   bool   `db:"is_admin"`
}

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	IsAdmin   bool   `json:"is_admin"`
}

// Serialize converts the user into its public representation.
func (u *User) Serialize() UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Location:  u.Location,
		IsAdmin:   u.IsAdmin,
	}
}

// SignupRequest defines the structure for a user registration request.
type SignupRequest struct {
	Username  string `json:"username" binding:"required,max=50" validate:"required,max=50"`
	Password  string `json:"password" binding:"required" validate:"required"`
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	FirstName string `json:"first_name" binding:"required" validate:"required"`
	LastName  string `json:"last_name" binding:"required" validate:"required"`
	Location  string `json:"location" binding:"required" validate:"required"`
}

// LoginRequest defines the structure for a user login request.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries the profile fields a user may change. Nil fields are left untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" binding:"omitempty,min=1" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1" validate:"omitempty,min=1"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location" binding:"omitempty,min=1" validate:"omitempty,min=1"`
}

// TokenResponse defines the structure for a successful signup or login response.
type TokenResponse struct {
	Token string `json:"token"`
}
