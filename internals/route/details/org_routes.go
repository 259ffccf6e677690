package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgController "tuttiud_backend/internals/features/organizations/controller"
)

func OrgUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := orgController.NewOrgController(db)
	r.Get("/me", ctrl.Me)
}

func OrgAdminRoutes(r fiber.Router, db *gorm.DB) {
	settings := orgController.NewOrgSettingController(db)
	r.Get("/settings", settings.List)
	r.Get("/settings/:key", settings.Get)
	r.Put("/settings/:key", settings.Put)
}

func OrgOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := orgController.NewOrgController(db)
	r.Patch("/org", ctrl.Update)
	r.Get("/members", ctrl.ListMembers)
	r.Patch("/members/:id", ctrl.UpdateMemberRole)
	r.Delete("/members/:id", ctrl.RemoveMember)
}
