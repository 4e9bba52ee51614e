package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// Handlers groups the API handlers mounted under the API prefix.
type Handlers struct {
	Auth      *AuthHandler
	Sessions  *SessionHandler
	Rooms     *RoomHandler
	Classes   *ClassHandler
	Teachers  *TeacherHandler
	Students  *StudentHandler
	Wishes    *WishHandler
	Resources *ResourceHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// RegisterRoutes mounts every endpoint on api. auth must authenticate the
// caller and store its claims for the role checks.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, auth gin.HandlerFunc) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
	adminOrSelf := middleware.RBAC(string(models.RoleAdmin), middleware.Self)

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/students/register", h.Students.Register)
	// The signed token authorises the download.
	api.GET("/resources/:id/download", h.Resources.Download)

	secured := api.Group("", auth)
	secured.GET("/auth/me", h.Auth.Me)

	secured.POST("/sessions", staff, h.Sessions.Create)
	secured.PUT("/sessions/:id", staff, h.Sessions.Update)
	secured.DELETE("/sessions/:id", staff, h.Sessions.Delete)

	secured.GET("/rooms", h.Rooms.List)
	secured.GET("/rooms/:id", h.Rooms.Get)
	secured.POST("/rooms", admin, h.Rooms.Create)
	secured.PUT("/rooms/:id", admin, h.Rooms.Update)
	secured.DELETE("/rooms/:id", admin, h.Rooms.Delete)

	secured.GET("/classes", h.Classes.List)
	secured.GET("/classes/:id", h.Classes.Get)
	secured.GET("/classes/:id/sessions", h.Sessions.ListForClass)
	secured.GET("/classes/:id/timetable/export", h.Export.ClassTimetable)
	secured.POST("/classes", admin, h.Classes.Create)
	secured.PUT("/classes/:id", admin, h.Classes.Update)
	secured.DELETE("/classes/:id", admin, h.Classes.Delete)

	secured.GET("/teachers", admin, h.Teachers.List)
	secured.POST("/teachers", admin, h.Teachers.Create)
	secured.PUT("/teachers/:id", admin, h.Teachers.Update)
	secured.DELETE("/teachers/:id", admin, h.Teachers.Delete)
	secured.GET("/teachers/:id/sessions", h.Sessions.ListForTeacher)
	secured.GET("/teachers/:id/teaching-units", adminOrSelf, h.Teachers.ListUnits)
	secured.GET("/teachers/:id/form-data", adminOrSelf, h.Teachers.FormData)
	secured.GET("/teachers/:id/wishes", adminOrSelf, h.Wishes.ListForTeacher)
	secured.GET("/teachers/:id/resources", h.Resources.ListForTeacher)
	secured.GET("/teachers/:id/dashboard", adminOrSelf, h.Dashboard.Teacher)
	secured.POST("/teaching-units", admin, h.Teachers.CreateUnit)

	secured.GET("/students", admin, h.Students.List)
	secured.GET("/students/:id/dashboard", adminOrSelf, h.Dashboard.Student)

	secured.POST("/wishes", staff, h.Wishes.Create)
	secured.DELETE("/wishes/:id", staff, h.Wishes.Delete)

	secured.POST("/resources", staff, h.Resources.Upload)
	secured.GET("/resources/:id", h.Resources.Get)
	secured.DELETE("/resources/:id", staff, h.Resources.Delete)

	secured.GET("/stats", admin, h.Dashboard.Stats)
}
