package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"inkpost/errs"
	"inkpost/middleware"
	"inkpost/models"
	"inkpost/services"
)

type AuthController struct {
	authService  *services.AuthService
	userService  *services.UserService
	cookieSecure bool
	log          zerolog.Logger
}

func NewAuthController(authService *services.AuthService, userService *services.UserService, cookieSecure bool, log zerolog.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		userService:  userService,
		cookieSecure: cookieSecure,
		log:          log.With().Str("component", "auth_controller").Logger(),
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ac.log, err)
		return
	}

	user, token, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	setTokenCookie(c, token, ac.authService.TokenTTL(), ac.cookieSecure)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"data":    user,
		"token":   token,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, ac.log, err)
		return
	}

	user, token, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	setTokenCookie(c, token, ac.authService.TokenTTL(), ac.cookieSecure)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    user,
		"token":   token,
	})
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	clearTokenCookie(c, ac.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		respondError(c, ac.log, errs.Unauthorized("unauthorized"))
		return
	}

	user, err := ac.userService.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
