package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "schoolku_backend/internals/features/finance/fees/controller"
)

// FeeRoutes mounts /fees on an authenticated router.
func FeeRoutes(r fiber.Router, db *gorm.DB) {
	ctl := feeController.NewFeeController(db)

	g := r.Group("/fees")
	g.Get("/", ctl.List)
	g.Get("/export", ctl.Export)
	g.Get("/stats/overview", ctl.Stats)
	g.Get("/student/:studentId", ctl.ListByStudent)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Post("/:id/payment", ctl.RecordPayment)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
