package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
)

type ReportHandler struct {
	Reporter *attendance.Reporter
}

func NewReportHandler(rep *attendance.Reporter) *ReportHandler {
	return &ReportHandler{Reporter: rep}
}

// GET /teacher/attendance/report?classId=&sectionId=&from=&to=
func (h *ReportHandler) Get(c echo.Context) error {
	classID := uintQuery(c, "classId")
	sectionID := uintQuery(c, "sectionId")
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if classID == 0 || from == "" || to == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	rep, err := h.Reporter.Build(c.Request().Context(), classID, sectionID, from, to)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}
