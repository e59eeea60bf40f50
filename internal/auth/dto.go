package auth

import (
	"github.com/angelmondragon/taskplanner-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the bearer token and account produced by a
// successful login. The token is the whole credential; nothing is kept
// server-side, so there is no refresh or revocation counterpart.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
