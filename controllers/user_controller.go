package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"inkpost/middleware"
	"inkpost/models"
	"inkpost/services"
)

type UserController struct {
	userService  *services.UserService
	cookieSecure bool
	log          zerolog.Logger
}

func NewUserController(userService *services.UserService, cookieSecure bool, log zerolog.Logger) *UserController {
	return &UserController{
		userService:  userService,
		cookieSecure: cookieSecure,
		log:          log.With().Str("component", "user_controller").Logger(),
	}
}

// GetProfile godoc
// @Summary Public profile of a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{username} [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.userService.GetPublicProfile(c.Request.Context(), c.Param("username"), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, uc.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// UpdateProfile godoc
// @Summary Edit the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.ProfilePatch true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /users/profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, uc.log, err)
		return
	}

	profile, err := uc.userService.UpdateProfile(c.Request.Context(), middleware.CurrentIdentity(c).ID, patch)
	if err != nil {
		respondError(c, uc.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// Deactivate godoc
// @Summary Deactivate the caller's account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users/deactivate [post]
func (uc *UserController) Deactivate(c *gin.Context) {
	if err := uc.userService.Deactivate(c.Request.Context(), middleware.CurrentIdentity(c).ID); err != nil {
		respondError(c, uc.log, err)
		return
	}

	clearTokenCookie(c, uc.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated successfully"})
}
