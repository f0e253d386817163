package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/middleware"
	"staffattendance/backend/internal/pkg/config"
	"staffattendance/backend/internal/pkg/repository/postgresql"

	"staffattendance/backend/internal/repository/postgres/attendance"
	"staffattendance/backend/internal/repository/postgres/department"
	"staffattendance/backend/internal/repository/postgres/holiday"
	"staffattendance/backend/internal/repository/postgres/position"
	"staffattendance/backend/internal/repository/postgres/report"
	"staffattendance/backend/internal/repository/postgres/staff"
	"staffattendance/backend/internal/repository/postgres/user"

	attendance_controller "staffattendance/backend/internal/controller/http/v1/attendance"
	auth_controller "staffattendance/backend/internal/controller/http/v1/auth"
	department_controller "staffattendance/backend/internal/controller/http/v1/department"
	holiday_controller "staffattendance/backend/internal/controller/http/v1/holiday"
	position_controller "staffattendance/backend/internal/controller/http/v1/position"
	report_controller "staffattendance/backend/internal/controller/http/v1/report"
	staff_controller "staffattendance/backend/internal/controller/http/v1/staff"
	user_controller "staffattendance/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	auth       *auth.Auth
	cfg        *config.Config
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	auth *auth.Auth,
	cfg *config.Config,
) *Router {
	return &Router{
		app,
		postgresDB,
		auth,
		cfg,
	}
}

func (r Router) Init() error {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.Cors(r.cfg.Web.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		if err := r.postgresDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB, r.cfg.Seed.DefaultStaffPassword)
	staffPostgres := staff.NewRepository(r.postgresDB, r.cfg.Seed.DefaultStaffPassword)
	departmentPostgres := department.NewRepository(r.postgresDB)
	positionPostgres := position.NewRepository(r.postgresDB)
	holidayPostgres := holiday.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)
	reportPostgres := report.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(userPostgres, r.auth, r.cfg.Auth.CookieName)
	userController := user_controller.NewController(userPostgres, r.auth)
	staffController := staff_controller.NewController(staffPostgres, departmentPostgres, r.auth)
	departmentController := department_controller.NewController(departmentPostgres)
	positionController := position_controller.NewController(positionPostgres)
	holidayController := holiday_controller.NewController(holidayPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres)
	reportController := report_controller.NewController(reportPostgres)

	authed := middleware.Authenticate(r.auth, r.cfg.Auth.CookieName)
	admin := middleware.Authenticate(r.auth, r.cfg.Auth.CookieName, auth.RoleAdmin)
	marker := middleware.Authenticate(r.auth, r.cfg.Auth.CookieName, auth.RoleAdmin, auth.RoleManager)
	employee := middleware.Authenticate(r.auth, r.cfg.Auth.CookieName, auth.RoleEmployee)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/logout", authController.Logout, authed)

	// #user
	r.Get("/api/v1/me", userController.Me, authed)
	r.Post("/api/v1/reset-password", userController.ChangePassword, authed)
	r.Post("/api/v1/admin/reset-user-password", userController.ResetUserPassword, admin)
	r.Post("/api/v1/admin/users", userController.CreateUser, admin)

	// #staff
	r.Get("/api/v1/staff", staffController.GetList, authed)
	r.Get("/api/v1/staff/departments", departmentController.GetList, authed)
	r.Get("/api/v1/staff/positions", positionController.GetList, authed)
	r.Get("/api/v1/staff/qrcodes", staffController.GetQrCodeList, admin)
	r.Get("/api/v1/staff/import/template", staffController.ImportTemplate, admin)
	r.Get("/api/v1/staff/:id", staffController.GetDetailById, authed)
	r.Get("/api/v1/staff/:id/qrcode", staffController.GetQrCode, admin)
	r.Post("/api/v1/staff", staffController.Create, admin)
	r.Post("/api/v1/staff/import", staffController.Import, admin)
	r.Put("/api/v1/staff/:id", staffController.UpdateColumns, admin)
	r.Delete("/api/v1/staff/:id", staffController.Delete, admin)

	// #holiday
	r.Get("/api/v1/holidays", holidayController.GetList, authed)
	r.Post("/api/v1/holidays", holidayController.Create, admin)
	r.Delete("/api/v1/holidays", holidayController.Delete, admin)

	// #attendance
	r.Get("/api/v1/attendance", attendanceController.GetByDate, authed)
	r.Get("/api/v1/attendance/month", attendanceController.GetMonth, authed)
	r.Post("/api/v1/attendance", attendanceController.Mark, marker)
	r.Post("/api/v1/attendance/bulk", attendanceController.Bulk, marker)
	r.Delete("/api/v1/attendance", attendanceController.Delete, marker)
	r.Get("/api/v1/my-report", attendanceController.MyReport, employee)

	// #report
	r.Get("/api/v1/reports/dashboard", reportController.Dashboard, authed)
	r.Get("/api/v1/reports/monthly", reportController.Monthly, authed)
	r.Get("/api/v1/reports/monthly/excel", reportController.MonthlyExcel, authed)
	r.Get("/api/v1/reports/monthly/pdf", reportController.MonthlyPDF, authed)
	r.Get("/api/v1/reports/overview", reportController.Overview, authed)

	return nil
}
