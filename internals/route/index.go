package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tuttiud_backend/internals/constants"
	authMiddleware "tuttiud_backend/internals/middlewares/auth"
	routeDetails "tuttiud_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	routeDetails.PeoplePublicRoutes(public, db)

	// ===================== USER (any member) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
	)
	routeDetails.OrgUserRoutes(user, db)
	routeDetails.PeopleUserRoutes(user, db)
	routeDetails.CatalogUserRoutes(user, db)
	routeDetails.SessionUserRoutes(user, db)
	routeDetails.DocumentUserRoutes(user, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(constants.AdminAndAbove...),
	)
	routeDetails.OrgAdminRoutes(admin, db)
	routeDetails.PeopleAdminRoutes(admin, db)
	routeDetails.CatalogAdminRoutes(admin, db)
	routeDetails.SessionAdminRoutes(admin, db)
	routeDetails.DocumentAdminRoutes(admin, db)

	// ===================== OWNER =====================
	log.Println("[INFO] Setting up OWNER group...")
	owner := app.Group("/api/o",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(constants.OwnerOnly...),
	)
	routeDetails.OrgOwnerRoutes(owner, db)
	routeDetails.BackupOwnerRoutes(owner, db)
}
