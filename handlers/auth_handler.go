package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/middlewares"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

const tokenTTL = 12 * time.Hour

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewAuthHandler(db *gorm.DB, secret string) *AuthHandler {
	return &AuthHandler{DB: db, JWTSecret: secret}
}

func (h *AuthHandler) signJWT(u models.User) (string, error) {
	now := time.Now()
	claims := middlewares.Claims{
		Sub:       u.ID,
		Role:      u.Role,
		Name:      u.Name,
		TeacherID: u.TeacherID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.JWTSecret))
}

type staffLoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /auth/staff/login
func (h *AuthHandler) StaffLogin(c echo.Context) error {
	var req staffLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var u models.User
	err := h.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	if !u.Enabled {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "ACCOUNT_DISABLED"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_SIGN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token":                 token,
		"user":                  u,
		"force_password_change": u.ForcePasswordChange,
	})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// PUT /teacher/profile/password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var u models.User
	if err := h.DB.First(&u, ident.UserID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "WRONG_PASSWORD"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}
	if err := h.DB.Model(&u).Updates(map[string]any{
		"password_hash":         string(hash),
		"force_password_change": false,
	}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
