package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionController "tuttiud_backend/internals/features/sessions/controller"
	"tuttiud_backend/internals/middlewares"
)

func SessionUserRoutes(r fiber.Router, db *gorm.DB) {
	sessions := sessionController.NewSessionController(db)
	r.Post("/session-records", middlewares.BodyLimit(256*1024), sessions.Create)
	r.Get("/session-records", sessions.List)
	r.Get("/session-records/:id", sessions.GetByID)
	r.Patch("/session-records/:id", middlewares.BodyLimit(256*1024), sessions.Update)
	r.Delete("/session-records/:id", sessions.Delete)
}

func SessionAdminRoutes(r fiber.Router, db *gorm.DB) {
	loose := sessionController.NewLooseSessionController(db)
	r.Get("/loose-sessions", loose.ListPending)
	r.Post("/loose-sessions/:id/assign", loose.AssignExisting)
	r.Post("/loose-sessions/:id/create-and-assign", loose.CreateAndAssign)
	r.Post("/loose-sessions/:id/reject", loose.Reject)
}
