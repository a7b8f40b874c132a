package controller

import (
	"errors"
	"net/http"

	"ctchen222/ShareBnB/internal/api/middleware"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/response"
	"ctchen222/ShareBnB/internal/api/service"

	"github.com/gin-gonic/gin"
)

// UserController handles user-related HTTP requests.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Signup handles the user registration endpoint.
func (uc *UserController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := uc.userService.Signup(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessResponse(c, models.TokenResponse{Token: token})
}

// Login handles the user login endpoint.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := uc.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.ErrorResponse(c, http.StatusUnauthorized, response.MsgInvalidCredentials)
			return
		}
		response.FromError(c, err)
		return
	}

	response.SuccessResponse(c, models.TokenResponse{Token: token})
}

// Logout revokes the presented token.
func (uc *UserController) Logout(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	if err := uc.userService.Logout(c.Request.Context(), claims); err != nil {
		if errors.Is(err, service.ErrLogoutUnavailable) {
			response.ErrorResponse(c, http.StatusNotImplemented, "Logout is not available")
			return
		}
		response.FromError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"logged_out": true})
}

// GetUser returns the public profile of a user.
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.userService.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"user": user.Serialize()})
}

// UpdateUser edits the caller's own profile.
func (uc *UserController) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := uc.userService.UpdateUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"user": user.Serialize()})
}

// DeleteUser removes a user along with their listings and messages.
func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.userService.DeleteUser(c.Request.Context(), c.Param("username")); err != nil {
		response.FromError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"deleted": "success"})
}
