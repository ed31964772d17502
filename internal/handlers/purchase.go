package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/services"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/localnerve/coursemart/internal/utils"
	"gorm.io/gorm"
)

// PurchaseHandler handles course purchases
type PurchaseHandler struct {
	CatalogDB *gorm.DB
	UserDB    *gorm.DB
}

// PurchaseInput names the course to buy. UserEmail defaults to the caller and may not name anyone else.
type PurchaseInput struct {
	CourseID  string `json:"courseId" form:"courseId"`
	UserEmail string `json:"userEmail" form:"userEmail"`
}

// BuyCourse handles POST /api/courses/buy
// @Summary Buy a course
// @Description Adds the course to the caller's purchases and awards its points. Buying twice is a conflict.
// @Tags Purchases
// @Accept json
// @Produce json
// @Param body body PurchaseInput true "Course to buy"
// @Success 200 {object} services.PurchaseResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Security BearerAuth
// @Router /courses/buy [post]
func (h *PurchaseHandler) BuyCourse(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	var in PurchaseInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, types.NewValidationError(map[string]string{"body": err.Error()}))
	}

	in.CourseID = strings.TrimSpace(in.CourseID)
	if in.CourseID == "" {
		return respondError(c, types.NewValidationError(map[string]string{"courseId": "is required"}))
	}

	caller := models.NormalizeEmail(id.Email)
	if in.UserEmail != "" && models.NormalizeEmail(in.UserEmail) != caller {
		return respondError(c, fmt.Errorf("cannot purchase for another user: %w", types.ErrUnauthorized))
	}

	result, err := services.PurchaseCourse(c.UserContext(), h.UserDB, h.CatalogDB, caller, in.CourseID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
