// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	feeRoute "schoolku_backend/internals/features/finance/fees/route"
	classRoute "schoolku_backend/internals/features/school/classes/classes/route"
	syllabusRoute "schoolku_backend/internals/features/school/syllabus/syllabus/route"
	userRoute "schoolku_backend/internals/features/users/user/route"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.Config) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== PRIVATE =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	api := app.Group("/api", authMiddleware.AuthenticateToken(cfg.JWTSecret))

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting School routes...")
	classRoute.ClassRoutes(api, db)
	syllabusRoute.SyllabusRoutes(api, db)

	log.Println("[INFO] Mounting Finance routes...")
	feeRoute.FeeRoutes(api, db)

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(api, db)
}
