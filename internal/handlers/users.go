package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/services"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/localnerve/coursemart/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles user profile routes
type UserHandler struct {
	CatalogDB *gorm.DB
	UserDB    *gorm.DB
}

// CreateUser handles POST /api/users
// @Summary Create a user
// @Description Stores the profile of a newly signed up user. Points start at zero.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.UserInput true "User profile"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) {
			return respondError(c, types.NewValidationError(map[string]string{"body": "unsupported content type"}))
		}
		return respondError(c, types.NewValidationError(map[string]string{"body": err.Error()}))
	}

	user, err := services.CreateUser(c.UserContext(), h.UserDB, &in)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// GetUser handles GET /api/users/:email
// @Summary Get a user and their progress
// @Description The user with each purchased course's computed completion percentage
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} services.UserProfile
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/{email} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	profile, err := services.GetUserProfile(c.UserContext(), h.UserDB, h.CatalogDB, pathParam(c, "email"))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, profile, fiber.StatusOK)
}

// GetUserCourses handles GET /api/users/:email/courses
// @Summary List courses created by a user
// @Description The user must be a teacher; an empty list means they have created none
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {array} models.Course
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/{email}/courses [get]
func (h *UserHandler) GetUserCourses(c *fiber.Ctx) error {
	courses, err := services.CreatedCourses(c.UserContext(), h.UserDB, h.CatalogDB, pathParam(c, "email"))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, courses, fiber.StatusOK)
}

// GetMe handles GET /api/me
// @Summary Get the current user
// @Description The caller's profile with progress, resolved from the identity provider
// @Tags Users
// @Produce json
// @Success 200 {object} services.UserProfile
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Security BearerAuth
// @Router /me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := services.GetUserProfile(c.UserContext(), h.UserDB, h.CatalogDB, id.Email)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, profile, fiber.StatusOK)
}
