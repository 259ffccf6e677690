package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	backupController "tuttiud_backend/internals/features/backup/controller"
	"tuttiud_backend/internals/middlewares"
)

func BackupOwnerRoutes(r fiber.Router, db *gorm.DB) {
	backup := backupController.NewBackupController(db)
	r.Post("/backup/export", backup.Export)
	r.Post("/backup/import", middlewares.BodyLimit(50*1024*1024), backup.Import)
}
