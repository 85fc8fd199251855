package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// DirectoryHandler is the narrow admin surface for the student and teacher
// rows this module needs: record keys, account linkage and name decoration.
// The full people directory lives outside this module.
type DirectoryHandler struct {
	DB *gorm.DB
}

func NewDirectoryHandler(db *gorm.DB) *DirectoryHandler { return &DirectoryHandler{DB: db} }

type studentReq struct {
	StudentCode string `json:"student_code" validate:"required,max=20"`
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"max=50"`
	ClassID     uint   `json:"class_id" validate:"required"`
	SectionID   uint   `json:"section_id"`
}

type teacherReq struct {
	TeacherCode string `json:"teacher_code" validate:"required,max=20"`
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"max=50"`
	Email       string `json:"email" validate:"omitempty,email,max=80"`
	Phone       string `json:"phone" validate:"max=15"`
}

// GET /admin/students?classId=&sectionId=&q=
func (h *DirectoryHandler) ListStudents(c echo.Context) error {
	tx := h.DB.Model(&models.Student{})
	if cid := uintQuery(c, "classId"); cid != 0 {
		tx = tx.Where("class_id = ?", cid)
	}
	if sid := uintQuery(c, "sectionId"); sid != 0 {
		tx = tx.Where("section_id = ?", sid)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(student_code) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like)
	}
	var rows []models.Student
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/students
func (h *DirectoryHandler) CreateStudent(c echo.Context) error {
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var dup models.Student
	if err := h.DB.Where("student_code = ?", req.StudentCode).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "STUDENT_CODE_EXISTS"})
	}
	row := models.Student{
		StudentCode: req.StudentCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		ClassID:     req.ClassID,
		SectionID:   req.SectionID,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusCreated, row)
}

// PUT /admin/students/:id
func (h *DirectoryHandler) UpdateStudent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var row models.Student
	if err := h.DB.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	row.StudentCode = req.StudentCode
	row.FirstName = req.FirstName
	row.LastName = req.LastName
	row.ClassID = req.ClassID
	row.SectionID = req.SectionID
	if err := h.DB.Save(&row).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /admin/students/:id
func (h *DirectoryHandler) DeleteStudent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res := h.DB.Delete(&models.Student{}, id)
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// GET /admin/teachers?q=
func (h *DirectoryHandler) ListTeachers(c echo.Context) error {
	tx := h.DB.Model(&models.Teacher{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(teacher_code) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like)
	}
	var rows []models.Teacher
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/teachers
func (h *DirectoryHandler) CreateTeacher(c echo.Context) error {
	var req teacherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var dup models.Teacher
	if err := h.DB.Where("teacher_code = ?", req.TeacherCode).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "TEACHER_CODE_EXISTS"})
	}
	row := models.Teacher{
		TeacherCode: req.TeacherCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	return c.JSON(http.StatusCreated, row)
}

// DELETE /admin/teachers/:id
func (h *DirectoryHandler) DeleteTeacher(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res := h.DB.Delete(&models.Teacher{}, id)
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
