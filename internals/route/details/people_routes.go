package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	instructorController "tuttiud_backend/internals/features/people/instructors/controller"
	studentController "tuttiud_backend/internals/features/people/students/controller"
	"tuttiud_backend/internals/middlewares"
)

func PeoplePublicRoutes(r fiber.Router, db *gorm.DB) {
	webhook := studentController.NewIntakeWebhookController(db)
	r.Post("/intake-webhook",
		middlewares.WebhookRateLimiter(),
		middlewares.BodyLimit(64*1024),
		webhook.Receive,
	)
}

func PeopleUserRoutes(r fiber.Router, db *gorm.DB) {
	students := studentController.NewStudentController(db)
	r.Get("/students", students.List)
	r.Get("/students/:id", students.GetByID)

	instructors := instructorController.NewInstructorController(db)
	r.Get("/instructors", instructors.List)
	r.Get("/instructors/:id", instructors.GetByID)
}

func PeopleAdminRoutes(r fiber.Router, db *gorm.DB) {
	students := studentController.NewStudentController(db)
	r.Post("/students", students.Create)
	r.Patch("/students/:id", students.Update)
	r.Post("/students/:id/approve-intake", students.ApproveIntake)
	r.Delete("/students/:id", students.Delete)

	instructors := instructorController.NewInstructorController(db)
	r.Post("/instructors", instructors.Create)
	r.Patch("/instructors/:id", instructors.Update)
	r.Delete("/instructors/:id", instructors.Delete)
}
