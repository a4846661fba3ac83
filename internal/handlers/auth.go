package handlers

import (
	"riskledger/internal/services/auth"
	"riskledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Name     string `form:"name" json:"name"`
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input signupRequest
	if err := c.BodyParser(&input); err != nil {
		return response.ValidationError(c, "body", "is malformed")
	}

	err := h.authService.Signup(c.UserContext(), auth.SignupInput{
		Username: input.Username,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Signup successful.", nil)
}

// Login verifies credentials and returns the user's public profile.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return response.ValidationError(c, "body", "is malformed")
	}

	user, err := h.authService.Login(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Login successful.", fiber.Map{
		"user_id":  user.ID,
		"username": user.Username,
		"name":     user.Name,
	})
}
