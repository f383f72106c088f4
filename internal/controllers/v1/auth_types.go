package v1

import "github.com/expense-tracker/backend/internal/models"

type SignupRequest struct {
	Username string `json:"username" example:"maria"`
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type LoginRequest struct {
	Username string `json:"username" example:"maria"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type UserResponse struct {
	Data User `json:"data"`
}

type User struct {
	models.DefaultModel
	Username string `json:"username" example:"maria"`
	Email    string `json:"email" example:"maria@example.com"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Username:     model.Username,
		Email:        model.Email,
	}
}

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"maria@example.com"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message" example:"password updated"`
}
