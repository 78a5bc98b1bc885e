package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	syllabusController "schoolku_backend/internals/features/school/syllabus/syllabus/controller"
)

// SyllabusRoutes mounts /syllabus on an authenticated router.
func SyllabusRoutes(r fiber.Router, db *gorm.DB) {
	ctl := syllabusController.NewSyllabusController(db)

	g := r.Group("/syllabus")
	g.Get("/", ctl.List)
	g.Get("/stats/overview", ctl.Stats)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
