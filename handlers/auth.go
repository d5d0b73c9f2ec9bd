package handlers

import (
	"net/http"

	"kam-api/apperrors"
	"kam-api/middleware"
	"kam-api/models"
	"kam-api/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string          `json:"username" binding:"required,min=3"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=Admin KAM Viewer"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	store *store.Store
	jwt   *middleware.JWT
}

func NewAuthHandler(s *store.Store, j *middleware.JWT) *AuthHandler {
	return &AuthHandler{store: s, jwt: j}
}

func userBody(u *models.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "role": u.Role}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password", "type": "internal"})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwt.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "type": "internal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    userBody(&user),
	})
}

// Login authenticates a user and returns a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	invalid := apperrors.Unauthorized("Invalid username or password")
	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			err = invalid
		}
		respondError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, invalid)
		return
	}

	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userBody(user),
	})
}

// Profile returns the authenticated user's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
