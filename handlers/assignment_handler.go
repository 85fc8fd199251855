package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// AssignmentHandler is the admin surface for teaching assignments — the
// authorization facts the ownership check reads.
type AssignmentHandler struct {
	DB *gorm.DB
}

func NewAssignmentHandler(db *gorm.DB) *AssignmentHandler { return &AssignmentHandler{DB: db} }

type assignmentReq struct {
	TeacherID    uint   `json:"teacher_id" validate:"required"`
	DepartmentID uint   `json:"department_id"`
	ClassID      uint   `json:"class_id" validate:"required"`
	SectionID    uint   `json:"section_id"`
	Subject      string `json:"subject" validate:"max=60"`
}

// GET /admin/assignments?teacherId=&classId=
func (h *AssignmentHandler) List(c echo.Context) error {
	tx := h.DB.Model(&models.TeachingAssignment{})
	if tid := uintQuery(c, "teacherId"); tid != 0 {
		tx = tx.Where("teacher_id = ?", tid)
	}
	if cid := uintQuery(c, "classId"); cid != 0 {
		tx = tx.Where("class_id = ?", cid)
	}
	var rows []models.TeachingAssignment
	if err := tx.Order("teacher_id ASC, class_id ASC, section_id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/assignments
func (h *AssignmentHandler) Create(c echo.Context) error {
	var req assignmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var t models.Teacher
	if err := h.DB.First(&t, req.TeacherID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "TEACHER_NOT_FOUND"})
	}

	row := models.TeachingAssignment{
		TeacherID:    req.TeacherID,
		DepartmentID: req.DepartmentID,
		ClassID:      req.ClassID,
		SectionID:    req.SectionID,
		Subject:      strings.TrimSpace(req.Subject),
	}
	var dup models.TeachingAssignment
	err := h.DB.Where("teacher_id = ? AND class_id = ? AND section_id = ? AND subject = ?",
		row.TeacherID, row.ClassID, row.SectionID, row.Subject).First(&dup).Error
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "ASSIGNMENT_EXISTS"})
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusCreated, row)
}

// PUT /admin/assignments/:id
func (h *AssignmentHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req assignmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var row models.TeachingAssignment
	if err := h.DB.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}

	row.TeacherID = req.TeacherID
	row.DepartmentID = req.DepartmentID
	row.ClassID = req.ClassID
	row.SectionID = req.SectionID
	row.Subject = strings.TrimSpace(req.Subject)
	if err := h.DB.Save(&row).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /admin/assignments/:id
func (h *AssignmentHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res := h.DB.Delete(&models.TeachingAssignment{}, id)
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
