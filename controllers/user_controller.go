package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/socialapi/apperr"
	"github.com/cppla/socialapi/middleware"
	"github.com/cppla/socialapi/services"
	"github.com/cppla/socialapi/utils"
)

// UserController handles registration, login and user listings.
type UserController struct {
	auth *services.AuthService
	gate *middleware.Gate
}

// NewUserController creates a new UserController instance.
func NewUserController(auth *services.AuthService, gate *middleware.Gate) *UserController {
	return &UserController{auth: auth, gate: gate}
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=32"`
	LastName  string `json:"lastName" binding:"required,min=2,max=64"`
	Username  string `json:"username" binding:"required,min=4,max=16"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=20"`
	BirthDate string `json:"birthDate" binding:"required,past_date"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account.
func (u *UserController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FailBind(ctx, err)
		return
	}
	birth, err := time.Parse(utils.DateLayout, req.BirthDate)
	if err != nil {
		utils.Fail(ctx, apperr.Validation(map[string]string{"birthDate": "must be a past date (YYYY-MM-DD)"}))
		return
	}

	user, err := u.auth.Register(ctx.Request.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: birth,
	})
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Created(ctx, gin.H{"user": services.UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}})
}

// Login exchanges credentials for a session token.
func (u *UserController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.FailBind(ctx, err)
		return
	}

	token, err := u.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.AuthInvalidCredentials) {
			utils.LoginFailures.Inc()
		}
		utils.Fail(ctx, err)
		return
	}
	utils.SessionsCreated.Inc()
	utils.Success(ctx, gin.H{"token": token})
}

// Logout revokes the presented session token, if any.
func (u *UserController) Logout(ctx *gin.Context) {
	if err := u.auth.Logout(ctx.Request.Context(), u.gate.Token(ctx.Request)); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// ListUsers returns public user summaries sorted by first name.
func (u *UserController) ListUsers(ctx *gin.Context) {
	page := parsePagination(ctx, "page", "page_size")
	users, err := u.auth.ListUsers(ctx.Request.Context(), page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"items":      users,
		"pagination": gin.H{"page": page.Number, "page_size": page.Limit()},
	})
}

// Me returns the profile of the user bound to the session token.
func (u *UserController) Me(ctx *gin.Context) {
	id, err := identity(ctx)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	profile, err := u.auth.Profile(ctx.Request.Context(), id.UserID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": profile})
}
