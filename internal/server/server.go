// server.go
//
// Course marketplace data service: catalog, purchases and learner progress
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of coursemart.
// coursemart is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// coursemart is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with coursemart.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package server assembles the Fiber application: middleware, routes and error handling.
package server

import (
	"errors"
	"log"
	"strings"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/coursemart/internal/config"
	"github.com/localnerve/coursemart/internal/handlers"
	"github.com/localnerve/coursemart/internal/identity"
	"github.com/localnerve/coursemart/internal/middleware"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/localnerve/coursemart/internal/utils"
	"gorm.io/gorm"

	_ "github.com/localnerve/coursemart/docs/api" // Swagger docs
)

// Deps are the collaborators the application is built from
type Deps struct {
	Config    *config.Config
	CatalogDB *gorm.DB
	UserDB    *gorm.DB
	Identity  identity.Provider

	// Metrics registers Prometheus collectors on the default registry; enable once per process
	Metrics bool
	// Quiet disables the request logger
	Quiet bool
}

// New builds the application
func New(deps Deps) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:      "coursemart",
		ErrorHandler: ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	if !deps.Quiet {
		app.Use(logger.New())
	}
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// Prometheus metrics
	if deps.Metrics {
		prometheus := fiberprometheus.New("coursemart")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &handlers.HealthHandler{Config: cfg, CatalogDB: deps.CatalogDB, UserDB: deps.UserDB}
	app.Get("/health", health.Health)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.RequestDeadline(cfg.StoreTimeout))

	authUser := middleware.AuthUser(deps.Identity, cfg.IdentityTimeout)
	optionalUser := middleware.OptionalUser(deps.Identity, cfg.IdentityTimeout)

	courses := &handlers.CourseHandler{CatalogDB: deps.CatalogDB, UserDB: deps.UserDB}
	users := &handlers.UserHandler{CatalogDB: deps.CatalogDB, UserDB: deps.UserDB}
	purchases := &handlers.PurchaseHandler{CatalogDB: deps.CatalogDB, UserDB: deps.UserDB}

	// Course catalog routes; fixed segments before :ids
	api.Get("/courses", courses.ListCourses)
	api.Get("/courses/created", authUser, courses.GetCreatedCourses)
	api.Post("/courses/buy", authUser, purchases.BuyCourse)
	api.Post("/courses", authUser, courses.CreateCourse)
	api.Get("/courses/:id/view", optionalUser, courses.GetCourseView)
	api.Post("/courses/:id/play", optionalUser, courses.PlayTopic)
	api.Post("/courses/:id/progress", authUser, courses.RecordProgress)
	api.Get("/courses/:ids", courses.GetCourses)

	// User routes
	api.Post("/users", users.CreateUser)
	api.Get("/users/:email/courses", users.GetUserCourses)
	api.Get("/users/:email", users.GetUser)
	api.Get("/me", authUser, users.GetMe)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, "not_found")
	})

	return app
}

// ErrorHandler renders errors returned from handlers and middleware in the standard envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		errorType := "http"
		if fe.Code == fiber.StatusNotFound {
			errorType = "not_found"
		}
		return utils.ErrorResponse(c, fe.Message, fe.Code, errorType)
	}

	ce := *types.Classify(err)
	if ce.Code >= fiber.StatusInternalServerError && !strings.HasPrefix(ce.Type, "store") && !strings.HasPrefix(ce.Type, "identity") {
		log.Printf("%s %s failed: %v", c.Method(), c.OriginalURL(), err)
		ce.Message = "Internal Server Error"
	}
	return utils.CustomErrorResponse(c, &ce)
}
