package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	documentController "tuttiud_backend/internals/features/documents/controller"
	"tuttiud_backend/internals/middlewares"
)

func DocumentUserRoutes(r fiber.Router, db *gorm.DB) {
	docs := documentController.NewDocumentController(db)
	r.Post("/documents", middlewares.BodyLimit(10*1024*1024), docs.Upload)
	r.Get("/documents", docs.List)
	r.Get("/documents/:id/download", docs.Download)
	r.Get("/documents/:id/thumb", docs.Thumb)
}

func DocumentAdminRoutes(r fiber.Router, db *gorm.DB) {
	docs := documentController.NewDocumentController(db)
	r.Delete("/documents/:id", docs.Delete)
}
