package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "schoolku_backend/internals/features/school/classes/classes/controller"
)

// ClassRoutes mounts /classes on an authenticated router.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctl := classController.NewClassController(db)

	g := r.Group("/classes")
	g.Get("/", ctl.List)
	g.Get("/stats/overview", ctl.Stats)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
