package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
)

type EditRequestHandler struct {
	Workflow *attendance.Workflow
}

func NewEditRequestHandler(wf *attendance.Workflow) *EditRequestHandler {
	return &EditRequestHandler{Workflow: wf}
}

// Change entries are filtered, not validated: the workflow drops malformed
// ones and rejects only an empty remainder.
type changeEntry struct {
	StudentID  uint   `json:"studentId"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	FromRemark string `json:"fromRemark"`
	ToRemark   string `json:"toRemark"`
}

type createRequestReq struct {
	ClassID   uint          `json:"classId" validate:"required"`
	SectionID uint          `json:"sectionId"`
	Date      string        `json:"date" validate:"required,datetime=2006-01-02"`
	Lecture   string        `json:"lecture" validate:"max=40"`
	Reason    string        `json:"reason"`
	Changes   []changeEntry `json:"changes" validate:"required,min=1"`
}

type decideReq struct {
	Action     string `json:"action" validate:"required,oneof=approve reject"`
	ReviewNote string `json:"reviewNote"`
}

// POST /teacher/edit-requests
func (h *EditRequestHandler) Create(c echo.Context) error {
	tid, err := teacherID(c)
	if err != nil {
		return err
	}

	var req createRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := attendance.CreateRequestInput{
		ClassID:   req.ClassID,
		SectionID: req.SectionID,
		Date:      req.Date,
		Lecture:   req.Lecture,
		Reason:    req.Reason,
		Changes:   make([]attendance.ChangeInput, 0, len(req.Changes)),
	}
	for _, ch := range req.Changes {
		in.Changes = append(in.Changes, attendance.ChangeInput{
			StudentID:  ch.StudentID,
			FromStatus: ch.FromStatus,
			ToStatus:   ch.ToStatus,
			FromRemark: ch.FromRemark,
			ToRemark:   ch.ToRemark,
		})
	}

	created, err := h.Workflow.Create(c.Request().Context(), tid, in)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"request": created})
}

func requestFilter(c echo.Context) attendance.RequestFilter {
	return attendance.RequestFilter{
		Status:    c.QueryParam("status"),
		ClassID:   uintQuery(c, "classId"),
		SectionID: uintQuery(c, "sectionId"),
		DateFrom:  c.QueryParam("from"),
		DateTo:    c.QueryParam("to"),
	}
}

// GET /teacher/edit-requests — the caller's own requests.
func (h *EditRequestHandler) ListMine(c echo.Context) error {
	tid, err := teacherID(c)
	if err != nil {
		return err
	}
	f := requestFilter(c)
	f.TeacherID = tid

	rows, err := h.Workflow.List(c.Request().Context(), f)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": rows})
}

// GET /staff/edit-requests — reviewer view over all requests.
func (h *EditRequestHandler) ListAll(c echo.Context) error {
	f := requestFilter(c)
	f.TeacherID = uintQuery(c, "teacherId")

	rows, err := h.Workflow.List(c.Request().Context(), f)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": rows})
}

// PATCH /staff/edit-requests/:id
func (h *EditRequestHandler) Decide(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	decided, err := h.Workflow.Decide(c.Request().Context(), id, ident.UserID, req.Action, req.ReviewNote)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"request": decided})
}
