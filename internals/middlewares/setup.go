package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/redis/go-redis/v9"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain. rdb may be nil, in which case
// the rate limiter counts in memory.
func SetupMiddlewares(app *fiber.App, cfg configs.Config, rdb *redis.Client) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestIDMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	app.Use(RequestTimeout(10 * time.Second))

	var storage fiber.Storage
	if rdb != nil {
		storage = database.NewRedisStorage(rdb, "schoolku:limiter:")
	}
	app.Use("/api", GlobalRateLimiter(storage, cfg.RateLimit))
}
