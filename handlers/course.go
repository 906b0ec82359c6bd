package handlers

import (
	"golf-tournament-system/middleware"
	"golf-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App, courses *services.CourseService) {
	// Course listings are public; layout edits require an authenticated admin.
	app.Get("/courses", courses.GetAllCourses)
	app.Get("/courses/:id", courses.GetCourseByID)

	secured := app.Group("/", middleware.UserContextMiddleware())
	admin := secured.Group("/", middleware.RequireRole("admin"))
	admin.Post("/courses", courses.CreateCourse)
	admin.Put("/courses/:id", courses.UpdateCourse)
	admin.Delete("/courses/:id", courses.DeleteCourse)
}
