package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// AccountHandler is the admin surface for staff/teacher accounts.
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler { return &AccountHandler{DB: db} }

type createAccountReq struct {
	Username  string `json:"username" validate:"required,min=3,max=60"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=admin staff teacher"`
	Name      string `json:"name" validate:"max=120"`
	TeacherID *uint  `json:"teacher_id"`
}

type patchAccountReq struct {
	Enabled             *bool `json:"enabled"`
	ForcePasswordChange *bool `json:"force_password_change"`
}

// GET /admin/accounts?role=
func (h *AccountHandler) List(c echo.Context) error {
	tx := h.DB.Model(&models.User{})
	if role := strings.TrimSpace(c.QueryParam("role")); role != "" {
		tx = tx.Where("role = ?", role)
	}
	var rows []models.User
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/accounts
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Teacher accounts must link to a real teacher profile.
	if req.Role == models.RoleTeacher {
		if req.TeacherID == nil || *req.TeacherID == 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_TEACHER_ID"})
		}
		var t models.Teacher
		if err := h.DB.First(&t, *req.TeacherID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "TEACHER_NOT_FOUND"})
		}
	} else {
		req.TeacherID = nil
	}

	username := strings.TrimSpace(req.Username)
	var dup models.User
	if err := h.DB.Where("username = ?", username).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "USERNAME_EXISTS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}
	u := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         req.Role,
		Name:         strings.TrimSpace(req.Name),
		TeacherID:    req.TeacherID,
		Enabled:      true,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusCreated, u)
}

// POST /admin/accounts/:id/reset — issues a one-time password and forces a
// change on next login.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var u models.User
	if err := h.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}

	oneTime := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	hash, err := bcrypt.GenerateFromPassword([]byte(oneTime), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}
	if err := h.DB.Model(&u).Updates(map[string]any{
		"password_hash":         string(hash),
		"force_password_change": true,
	}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"one_time_password": oneTime})
}

// PATCH /admin/accounts/:id
func (h *AccountHandler) Patch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req patchAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	var u models.User
	if err := h.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}

	updates := map[string]any{}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.ForcePasswordChange != nil {
		updates["force_password_change"] = *req.ForcePasswordChange
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "EMPTY_PATCH"})
	}
	if err := h.DB.Model(&u).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, u)
}
