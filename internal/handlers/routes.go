package handlers

import (
	"context"
	"time"

	"github.com/arzan03/EstateHub/internal/middleware"
	"github.com/arzan03/EstateHub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Auth       *services.AuthService
	Properties *services.PropertyService
	Users      *services.UserService
	Uploads    *services.UploadService
	Ping       func(context.Context) error
}

type Options struct {
	BodyLimitMB    int
	RequestTimeout time.Duration
	CORSOrigins    string
	RequestLogging bool
}

// PublicRoutes are reachable without a bearer token.
var PublicRoutes = []middleware.Route{
	{Method: fiber.MethodGet, Path: "/healthz"},
	{Method: fiber.MethodPost, Path: "/api/signup"},
	{Method: fiber.MethodPost, Path: "/api/login"},
	{Method: fiber.MethodGet, Path: "/api/properties"},
	{Method: fiber.MethodGet, Path: "/api/properties/:id"},
	{Method: fiber.MethodGet, Path: "/uploads/:filename"},
}

// NewApp builds the fiber application with middleware and every route mounted.
func NewApp(opts Options, svc Services) *fiber.App {
	config := fiber.Config{ErrorHandler: ErrorHandler}
	if opts.BodyLimitMB > 0 {
		config.BodyLimit = opts.BodyLimitMB * 1024 * 1024
	}
	app := fiber.New(config)

	app.Use(recover.New())
	if opts.RequestLogging {
		app.Use(logger.New())
	}
	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))
	app.Use(middleware.RequestTimeout(opts.RequestTimeout))
	app.Use(middleware.AuthMiddleware(svc.Auth, PublicRoutes...))

	auth := NewAuthHandler(svc.Auth)
	properties := NewPropertyHandler(svc.Properties)
	users := NewUserHandler(svc.Users, svc.Uploads)
	files := NewFileHandler(svc.Uploads)
	admin := NewAdminHandler(svc.Users, svc.Properties)

	app.Get("/healthz", Health(svc.Ping))
	app.Get("/uploads/:filename", files.Serve)

	api := app.Group("/api")
	api.Post("/signup", auth.Signup)
	api.Post("/login", auth.Login)

	// Property Routes
	api.Get("/properties", properties.List)
	api.Get("/properties/mine", properties.Mine)
	api.Get("/properties/:id", properties.Get)
	api.Post("/properties", properties.Create)
	api.Put("/properties/:id", properties.Update)
	api.Delete("/properties/:id", properties.Delete)

	// User Routes
	api.Get("/user/profile", users.Profile)
	api.Put("/user/profile", users.UpdateProfile)
	api.Post("/user/upload-photo", users.UploadPhoto)
	api.Post("/upload", files.UploadImages)

	// Admin Routes
	adminGroup := api.Group("/admin", middleware.AdminMiddleware)
	adminGroup.Get("/users", admin.ListUsers)
	adminGroup.Get("/users/:id", admin.GetUser)
	adminGroup.Delete("/users/:id", admin.DeleteUser)
	adminGroup.Patch("/properties/:id/featured", admin.SetFeatured)

	return app
}
