// Package router wires handlers, middleware and route groups into the
// gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/handler"
	"github.com/campushq/uni-admin-api/internal/middleware"
	"github.com/campushq/uni-admin-api/internal/models"
	"github.com/campushq/uni-admin-api/internal/service"
	"github.com/campushq/uni-admin-api/pkg/config"
	"github.com/campushq/uni-admin-api/pkg/logger"
	corsmiddleware "github.com/campushq/uni-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/uni-admin-api/pkg/middleware/requestid"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Auth    *service.AuthService
	Metrics *service.MetricsService

	AuthHandler         *handler.AuthHandler
	OrgHandler          *handler.OrgHandler
	CourseHandler       *handler.CourseHandler
	TermHandler         *handler.TermHandler
	StudentHandler      *handler.StudentHandler
	SectionHandler      *handler.SectionHandler
	RegistrationHandler *handler.RegistrationHandler
	AttendanceHandler   *handler.AttendanceHandler
	MaterialHandler     *handler.MaterialHandler
	EmployeeHandler     *handler.EmployeeHandler
	UserHandler         *handler.UserHandler
	ExportHandler       *handler.ExportHandler
}

var (
	adminOnly  = []models.RoleType{models.RoleAdmin, models.RoleSuper}
	staffWrite = []models.RoleType{models.RoleAdmin, models.RoleSuper, models.RoleStaff}
	teaching   = []models.RoleType{models.RoleAdmin, models.RoleSuper, models.RoleStaff, models.RoleFaculty}
)

// New builds the engine with all middleware and routes registered.
func New(d Deps) *gin.Engine {
	if d.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if d.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(d.Config.APIPrefix)

	// Public: signup, login, and signed material downloads. Download links
	// carry their own HMAC token so no JWT is required to follow one.
	api.POST("/auth/signup", d.AuthHandler.Signup)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.GET("/materials/download", d.MaterialHandler.Download)

	authed := api.Group("")
	authed.Use(middleware.JWT(d.Auth))

	authed.POST("/auth/refresh", d.AuthHandler.Refresh)
	authed.POST("/auth/logout", d.AuthHandler.Logout)
	authed.GET("/auth/me", d.AuthHandler.Me)
	authed.POST("/auth/change-password", d.AuthHandler.ChangePassword)

	registerOrgRoutes(authed, d.OrgHandler)
	registerCatalogRoutes(authed, d.CourseHandler, d.TermHandler)
	registerStudentRoutes(authed, d.StudentHandler)
	registerSectionRoutes(authed, d.SectionHandler, d.ExportHandler)
	registerRegistrationRoutes(authed, d.RegistrationHandler)
	registerAttendanceRoutes(authed, d.AttendanceHandler)
	registerMaterialRoutes(authed, d.MaterialHandler)
	registerEmployeeRoutes(authed, d.EmployeeHandler)
	registerUserRoutes(authed, d.UserHandler)

	return r
}

func registerOrgRoutes(g *gin.RouterGroup, h *handler.OrgHandler) {
	write := middleware.RequireRoles(staffWrite...)

	g.GET("/institutions", h.ListInstitutions)
	g.GET("/institutions/:id", h.GetInstitution)
	g.POST("/institutions", write, h.CreateInstitution)
	g.PUT("/institutions/:id", write, h.UpdateInstitution)
	g.DELETE("/institutions/:id", write, h.DeleteInstitution)

	g.GET("/faculties", h.ListFaculties)
	g.GET("/faculties/:id", h.GetFaculty)
	g.POST("/faculties", write, h.CreateFaculty)
	g.PUT("/faculties/:id", write, h.UpdateFaculty)
	g.DELETE("/faculties/:id", write, h.DeleteFaculty)

	g.GET("/departments", h.ListDepartments)
	g.GET("/departments/:id", h.GetDepartment)
	g.POST("/departments", write, h.CreateDepartment)
	g.PUT("/departments/:id", write, h.UpdateDepartment)
	g.DELETE("/departments/:id", write, h.DeleteDepartment)

	g.GET("/programs", h.ListPrograms)
	g.GET("/programs/:id", h.GetProgram)
	g.POST("/programs", write, h.CreateProgram)
	g.PUT("/programs/:id", write, h.UpdateProgram)
	g.DELETE("/programs/:id", write, h.DeleteProgram)

	g.GET("/program-courses", h.ListProgramCourses)
	g.POST("/program-courses", write, h.CreateProgramCourse)
	g.PUT("/program-courses/:id", write, h.UpdateProgramCourse)
	g.DELETE("/program-courses/:id", write, h.DeleteProgramCourse)
}

func registerCatalogRoutes(g *gin.RouterGroup, courses *handler.CourseHandler, terms *handler.TermHandler) {
	write := middleware.RequireRoles(staffWrite...)

	g.GET("/courses", courses.List)
	g.GET("/courses/:id", courses.Get)
	g.POST("/courses", write, courses.Create)
	g.PUT("/courses/:id", write, courses.Update)
	g.DELETE("/courses/:id", write, courses.Delete)

	g.GET("/terms", terms.List)
	g.GET("/terms/:id", terms.Get)
	g.POST("/terms", write, terms.Create)
	g.PUT("/terms/:id", write, terms.Update)
	g.DELETE("/terms/:id", write, terms.Delete)
}

func registerStudentRoutes(g *gin.RouterGroup, h *handler.StudentHandler) {
	write := middleware.RequireRoles(staffWrite...)

	g.GET("/students", middleware.RequireRoles(teaching...), h.List)
	g.GET("/students/:id", middleware.RequireRoles(teaching...), h.Get)
	g.POST("/students", write, h.Create)
	g.PUT("/students/:id", write, h.Update)
	g.DELETE("/students/:id", write, h.Delete)

	g.GET("/enrollments", middleware.RequireRoles(teaching...), h.ListEnrollments)
	g.POST("/enrollments", write, h.CreateEnrollment)
	g.PUT("/enrollments/:id", write, h.UpdateEnrollment)
	g.DELETE("/enrollments/:id", write, h.DeleteEnrollment)
}

func registerSectionRoutes(g *gin.RouterGroup, h *handler.SectionHandler, exports *handler.ExportHandler) {
	write := middleware.RequireRoles(staffWrite...)

	g.GET("/sections", h.List)
	g.GET("/sections/:id", h.Get)
	g.POST("/sections", write, h.Create)
	g.PUT("/sections/:id", write, h.Update)
	g.DELETE("/sections/:id", write, h.Delete)

	g.GET("/sections/:id/instructors", h.ListInstructors)
	g.POST("/instructors", write, h.AssignInstructor)
	g.PUT("/instructors/:id", write, h.UpdateInstructor)
	g.DELETE("/instructors/:id", write, h.RemoveInstructor)

	g.GET("/sections/:id/roster", middleware.RequireRoles(teaching...), exports.SectionRoster)
	g.GET("/sections/:id/attendance-sheet", middleware.RequireRoles(teaching...), exports.AttendanceSheet)
}

func registerRegistrationRoutes(g *gin.RouterGroup, h *handler.RegistrationHandler) {
	write := middleware.RequireRoles(staffWrite...)

	g.GET("/registrations", middleware.RequireRoles(teaching...), h.List)
	g.GET("/registrations/:id", middleware.RequireRoles(teaching...), h.Get)
	g.POST("/registrations", write, h.Create)
	g.PUT("/registrations/:id", write, h.Update)
	g.POST("/registrations/:id/drop", write, h.Drop)
	g.DELETE("/registrations/:id", write, h.Delete)
}

func registerAttendanceRoutes(g *gin.RouterGroup, h *handler.AttendanceHandler) {
	record := middleware.RequireRoles(teaching...)

	g.GET("/attendance", record, h.List)
	g.POST("/attendance", record, h.Record)
	g.DELETE("/attendance/:id", middleware.RequireRoles(staffWrite...), h.Delete)
	g.GET("/attendance/summary", record, h.Summary)
}

func registerMaterialRoutes(g *gin.RouterGroup, h *handler.MaterialHandler) {
	manage := middleware.RequireRoles(teaching...)

	g.GET("/materials", h.List)
	g.GET("/materials/:id", h.Get)
	g.POST("/materials", manage, h.Create)
	g.PUT("/materials/:id", manage, h.Update)
	g.POST("/materials/:id/upload", manage, h.Upload)
	g.GET("/materials/:id/download-link", h.DownloadLink)
	g.DELETE("/materials/:id", manage, h.Delete)
}

func registerEmployeeRoutes(g *gin.RouterGroup, h *handler.EmployeeHandler) {
	write := middleware.RequireRoles(staffWrite...)

	g.GET("/employees", middleware.RequireRoles(teaching...), h.List)
	g.GET("/employees/:id", middleware.RequireRoles(teaching...), h.Get)
	g.POST("/employees", write, h.Create)
	g.PUT("/employees/:id", write, h.Update)
	g.DELETE("/employees/:id", write, h.Delete)
}

func registerUserRoutes(g *gin.RouterGroup, h *handler.UserHandler) {
	admin := middleware.RequireRoles(adminOnly...)

	g.GET("/users", admin, h.List)
	g.GET("/users/:id", middleware.RBAC("SELF", string(models.RoleAdmin), string(models.RoleSuper)), h.Get)
	g.POST("/users", admin, h.Create)
	g.PUT("/users/:id", admin, h.Update)
	g.POST("/users/:id/roles", admin, h.AssignRole)
	g.DELETE("/users/roles/:assignmentId", admin, h.RevokeRole)
	g.DELETE("/users/:id", admin, h.Delete)
}
