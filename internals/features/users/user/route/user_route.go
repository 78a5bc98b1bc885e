package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "schoolku_backend/internals/features/users/user/controller"
)

// UserRoutes mounts /users on an authenticated router.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	g := r.Group("/users")
	g.Get("/", ctl.List)
	g.Get("/stats/overview", ctl.Stats)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id/activate", ctl.Activate)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
