package auth

import "github.com/Joan938/holbertonschool-hbnb/entity"

// LoginRequest contains user login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult bundles the token and domain user returned after a successful login.
type LoginResult struct {
	Token string      `json:"access_token"`
	User  entity.User `json:"user"`
}
