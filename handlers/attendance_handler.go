package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
)

type AttendanceHandler struct {
	Recorder *attendance.Recorder
}

func NewAttendanceHandler(rec *attendance.Recorder) *AttendanceHandler {
	return &AttendanceHandler{Recorder: rec}
}

type markEntry struct {
	StudentID uint   `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late leave"`
	Remark    string `json:"remark"`
}

type markReq struct {
	ClassID      uint        `json:"classId" validate:"required"`
	SectionID    uint        `json:"sectionId"`
	DepartmentID uint        `json:"departmentId"`
	Date         string      `json:"date" validate:"required,datetime=2006-01-02"`
	Lecture      string      `json:"lecture" validate:"max=40"`
	Marks        []markEntry `json:"marks" validate:"required,min=1,dive"`
}

// POST /teacher/attendance/mark
func (h *AttendanceHandler) Mark(c echo.Context) error {
	tid, err := teacherID(c)
	if err != nil {
		return err
	}

	var req markReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := attendance.MarkInput{
		ClassID:      req.ClassID,
		SectionID:    req.SectionID,
		DepartmentID: req.DepartmentID,
		Date:         req.Date,
		Lecture:      req.Lecture,
		Marks:        make([]attendance.Mark, 0, len(req.Marks)),
	}
	for _, m := range req.Marks {
		in.Marks = append(in.Marks, attendance.Mark{
			StudentID: m.StudentID,
			Status:    m.Status,
			Remark:    m.Remark,
		})
	}

	if err := h.Recorder.MarkAttendance(c.Request().Context(), tid, in); err != nil {
		return attendanceError(c, err)
	}
	// The caller already has the marks it sent; nothing more to return.
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// GET /teacher/attendance?classId=&sectionId=&date=&lecture=
func (h *AttendanceHandler) List(c echo.Context) error {
	q := attendance.RecordQuery{
		ClassID:   uintQuery(c, "classId"),
		SectionID: uintQuery(c, "sectionId"),
		Date:      c.QueryParam("date"),
	}
	if q.ClassID == 0 || q.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if c.QueryParams().Has("lecture") {
		lecture := c.QueryParam("lecture")
		q.Lecture = &lecture
	}

	rows, err := h.Recorder.List(c.Request().Context(), q)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"attendance": rows})
}
