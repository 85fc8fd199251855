package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/attendance"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/config"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/handlers"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/middlewares"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/storage"
)

// Register wires the service graph and all HTTP routes.
func Register(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	store := storage.New(db)

	ownership := &attendance.OwnershipResolver{Assignments: store}
	policy := &attendance.PolicyService{Store: store}
	recorder := &attendance.Recorder{
		Records:   store,
		Ownership: ownership,
		Policy:    policy,
		Directory: store,
	}
	workflow := &attendance.Workflow{Requests: store, Ownership: ownership}
	reporter := &attendance.Reporter{Records: store}

	auth := handlers.NewAuthHandler(db, cfg.JWTSecret)
	att := handlers.NewAttendanceHandler(recorder)
	er := handlers.NewEditRequestHandler(workflow)
	pol := handlers.NewPolicyHandler(policy)
	rep := handlers.NewReportHandler(reporter)
	acc := handlers.NewAccountHandler(db)
	dir := handlers.NewDirectoryHandler(db)
	asg := handlers.NewAssignmentHandler(db)
	mod := handlers.NewModuleHandler(store)

	// ===== Public =====
	e.GET("/healthz", handlers.Health)
	e.POST("/auth/staff/login", auth.StaffLogin)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	gate := middlewares.RequireModule(models.ModuleStudentAttendance, store)

	// ===== Teacher routes =====
	teacher := e.Group("/teacher", authMW,
		middlewares.RequireRole(models.RoleTeacher, models.RoleStaff, models.RoleAdmin), gate)

	teacher.POST("/attendance/mark", att.Mark)
	teacher.GET("/attendance", att.List)
	teacher.GET("/attendance/report", rep.Get)

	teacher.POST("/edit-requests", er.Create)
	teacher.GET("/edit-requests", er.ListMine)

	teacher.PUT("/profile/password", auth.ChangePassword)

	// ===== Staff (reviewer) routes =====
	staff := e.Group("/staff", authMW,
		middlewares.RequireRole(models.RoleStaff, models.RoleAdmin), gate)

	staff.GET("/edit-requests", er.ListAll)
	staff.PATCH("/edit-requests/:id", er.Decide)

	staff.GET("/attendance-policy", pol.Get)
	staff.PUT("/attendance-policy", pol.Put)

	// ===== Admin routes =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole(models.RoleAdmin))

	admin.GET("/accounts", acc.List)
	admin.POST("/accounts", acc.Create)
	admin.POST("/accounts/:id/reset", acc.ResetPassword)
	admin.PATCH("/accounts/:id", acc.Patch)

	admin.GET("/students", dir.ListStudents)
	admin.POST("/students", dir.CreateStudent)
	admin.PUT("/students/:id", dir.UpdateStudent)
	admin.DELETE("/students/:id", dir.DeleteStudent)

	admin.GET("/teachers", dir.ListTeachers)
	admin.POST("/teachers", dir.CreateTeacher)
	admin.DELETE("/teachers/:id", dir.DeleteTeacher)

	admin.GET("/assignments", asg.List)
	admin.POST("/assignments", asg.Create)
	admin.PUT("/assignments/:id", asg.Update)
	admin.DELETE("/assignments/:id", asg.Delete)

	admin.GET("/modules", mod.List)
	admin.PUT("/modules/:key", mod.Put)
}
