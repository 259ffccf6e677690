package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogController "tuttiud_backend/internals/features/catalog/services/controller"
)

func CatalogUserRoutes(r fiber.Router, db *gorm.DB) {
	services := catalogController.NewServiceController(db)
	r.Get("/services", services.List)

	templates := catalogController.NewTemplateController(db)
	r.Get("/templates", templates.List)

	rec := catalogController.NewRecommendationController(db)
	r.Get("/session-recommendations", rec.Get)
}

func CatalogAdminRoutes(r fiber.Router, db *gorm.DB) {
	services := catalogController.NewServiceController(db)
	r.Post("/services", services.Create)
	r.Patch("/services/:id", services.Update)
	r.Delete("/services/:id", services.Delete)

	templates := catalogController.NewTemplateController(db)
	r.Post("/templates", templates.Create)
	r.Patch("/templates/:id", templates.Update)
}
