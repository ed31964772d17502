// courses.go
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

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/entitlement"
	"github.com/localnerve/coursemart/internal/middleware"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/services"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/localnerve/coursemart/internal/utils"
	"gorm.io/gorm"
)

// CourseHandler handles course catalog routes
type CourseHandler struct {
	CatalogDB *gorm.DB
	UserDB    *gorm.DB
}

// PlayInput addresses a topic by position or by video url
type PlayInput struct {
	Chapter  *int   `json:"chapter"`
	Topic    *int   `json:"topic"`
	VideoURL string `json:"videoUrl"`
}

// ProgressInput reports how many videos of a course have been watched
type ProgressInput struct {
	NumberOfVideosWatched types.FlexInt `json:"numberOfVideosWatched"`
}

// ListCourses handles GET /api/courses?ids=...
// @Summary List courses
// @Description List every course, or only the given ids in the order given (unknown ids are omitted)
// @Tags Courses
// @Produce json
// @Param ids query string false "Comma-separated list of course ids"
// @Success 200 {array} models.Course
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	var (
		courses []models.Course
		err     error
	)

	if c.Context().QueryArgs().Has("ids") {
		courses, err = services.CoursesForIds(c.UserContext(), h.CatalogDB, parseIDs(c))
	} else {
		courses, err = services.ListCourses(c.UserContext(), h.CatalogDB)
	}
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, courses, fiber.StatusOK)
}

// GetCourses handles GET /api/courses/:ids
// @Summary Get one course or many
// @Description A single id returns that course (404 when absent). A comma-separated list returns the courses found, in order.
// @Tags Courses
// @Produce json
// @Param ids path string true "Course id, or comma-separated course ids"
// @Success 200 {object} models.Course
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /courses/{ids} [get]
func (h *CourseHandler) GetCourses(c *fiber.Ctx) error {
	raw := pathParam(c, "ids")

	if strings.Contains(raw, ",") {
		courses, err := services.CoursesForIds(c.UserContext(), h.CatalogDB, splitIDs(raw))
		if err != nil {
			return respondError(c, err)
		}
		return utils.SuccessResponse(c, courses, fiber.StatusOK)
	}

	course, err := services.GetCourse(c.UserContext(), h.CatalogDB, strings.TrimSpace(raw))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Course '%s' not found", raw))
		}
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, course, fiber.StatusOK)
}

// GetCreatedCourses handles GET /api/courses/created?email=...
// @Summary List courses created by a teacher
// @Description The requester must be a teacher. The email defaults to the requester's own.
// @Tags Courses
// @Produce json
// @Param email query string false "Instructor email"
// @Success 200 {array} models.Course
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Security BearerAuth
// @Router /courses/created [get]
func (h *CourseHandler) GetCreatedCourses(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	requester, err := services.GetUserByEmail(c.UserContext(), h.UserDB, id.Email)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return respondError(c, err)
	}
	if !entitlement.CanCreateCourse(requester) {
		return respondError(c, fmt.Errorf("only teachers can list created courses: %w", types.ErrUnauthorized))
	}

	email := c.Query("email", requester.Email)
	courses, err := services.CoursesByInstructorEmail(c.UserContext(), h.CatalogDB, email)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, courses, fiber.StatusOK)
}

// GetCourseView handles GET /api/courses/:id/view
// @Summary Get a course as the caller sees it
// @Description Purchase state, progress and per-topic playability. Anonymous callers see only the free preview.
// @Tags Courses
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} entitlement.CourseView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /courses/{id}/view [get]
func (h *CourseHandler) GetCourseView(c *fiber.Ctx) error {
	course, err := services.GetCourse(c.UserContext(), h.CatalogDB, pathParam(c, "id"))
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.viewer(c)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, entitlement.BuildCourseView(course, user), fiber.StatusOK)
}

// PlayTopic handles POST /api/courses/:id/play
// @Summary Check a topic can be played
// @Description Returns the video url when the caller bought the course, created it, or asks for the free preview
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course id"
// @Param body body PlayInput true "Topic by chapter/topic index or by videoUrl"
// @Success 200 {object} utils.PlayResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Security BearerAuth
// @Router /courses/{id}/play [post]
func (h *CourseHandler) PlayTopic(c *fiber.Ctx) error {
	var in PlayInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, types.NewValidationError(map[string]string{"body": err.Error()}))
	}

	course, err := services.GetCourse(c.UserContext(), h.CatalogDB, pathParam(c, "id"))
	if err != nil {
		return respondError(c, err)
	}

	var ref entitlement.TopicRef
	switch {
	case in.VideoURL != "":
		var ok bool
		if ref, ok = entitlement.TopicByVideoURL(course, in.VideoURL); !ok {
			return respondError(c, fmt.Errorf("video %s: %w", in.VideoURL, types.ErrNotFound))
		}
	case in.Chapter != nil && in.Topic != nil:
		ref = entitlement.TopicRef{Chapter: *in.Chapter, Topic: *in.Topic}
		if !entitlement.Exists(course, ref) {
			return respondError(c, fmt.Errorf("topic %d.%d: %w", ref.Chapter, ref.Topic, types.ErrNotFound))
		}
	default:
		return respondError(c, types.NewValidationError(map[string]string{
			"videoUrl": "videoUrl or chapter and topic are required",
		}))
	}

	unlocked := false
	if id := middleware.CurrentIdentity(c); id != nil {
		unlocked = entitlement.CanEditCourse(&models.User{Email: id.Email}, course)
		if !unlocked {
			if unlocked, err = services.HasPurchased(c.UserContext(), h.UserDB, id.Email, course.ID); err != nil {
				return respondError(c, err)
			}
		}
	}
	if !entitlement.CanPlay(course, ref, unlocked) {
		return respondError(c, entitlement.ErrNotPurchased)
	}

	return utils.SuccessResponse(c, utils.PlayResponseStruct{
		CourseID:    course.ID,
		Chapter:     ref.Chapter,
		Topic:       ref.Topic,
		VideoURL:    course.Chapters[ref.Chapter].Topics[ref.Topic].VideoURL,
		FreePreview: entitlement.IsFreePreview(course, ref),
	}, fiber.StatusOK)
}

// RecordProgress handles POST /api/courses/:id/progress
// @Summary Record watched videos
// @Description Stores the caller's watched count for a purchased course. The count never decreases and is capped at the course's video count.
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course id"
// @Param body body ProgressInput true "Watched count"
// @Success 200 {object} models.CourseProgress
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Security BearerAuth
// @Router /courses/{id}/progress [post]
func (h *CourseHandler) RecordProgress(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	var in ProgressInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, types.NewValidationError(map[string]string{"body": err.Error()}))
	}

	progress, err := services.RecordVideosWatched(c.UserContext(), h.UserDB, h.CatalogDB,
		id.Email, pathParam(c, "id"), in.NumberOfVideosWatched.Int())
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, progress, fiber.StatusOK)
}

// CreateCourse handles POST /api/courses
// @Summary Create a course
// @Description Teachers only. Accepts JSON, or a form where tags and chapters are JSON-encoded strings.
// @Tags Courses
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param body body services.CourseInput true "Course content"
// @Success 201 {object} models.Course
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	id, err := requireIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	in, err := parseCourseInput(c)
	if err != nil {
		return respondError(c, err)
	}

	author, err := services.GetUserByEmail(c.UserContext(), h.UserDB, id.Email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return respondError(c, fmt.Errorf("no profile for %s: %w", id.Email, types.ErrUnauthorized))
		}
		return respondError(c, err)
	}

	course, err := services.CreateCourse(c.UserContext(), h.CatalogDB, author, in)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SuccessResponse(c, course, fiber.StatusCreated)
}

// viewer loads the caller's user record. Anonymous callers are nil; an identity
// without a profile is an empty user carrying only the email.
func (h *CourseHandler) viewer(c *fiber.Ctx) (*models.User, error) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return nil, nil
	}
	user, err := services.GetUserByEmail(c.UserContext(), h.UserDB, id.Email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return &models.User{Email: models.NormalizeEmail(id.Email)}, nil
		}
		return nil, err
	}
	return user, nil
}

// parseCourseInput reads a JSON body or form fields into a CourseInput
func parseCourseInput(c *fiber.Ctx) (*services.CourseInput, error) {
	in := &services.CourseInput{}

	if c.Is("json") {
		if err := c.BodyParser(in); err != nil {
			return nil, types.NewValidationError(map[string]string{"body": err.Error()})
		}
		return in, nil
	}

	fields := map[string]string{}
	in.Title = c.FormValue("title")
	in.Description = c.FormValue("description")
	in.Thumbnail = c.FormValue("thumbnail")
	in.InstructorAvatar = c.FormValue("instructorAvatar")

	if err := in.Tags.UnmarshalText([]byte(c.FormValue("tags"))); err != nil {
		fields["tags"] = "must be a JSON array or a comma-separated list"
	}
	if err := in.PointsAwarded.UnmarshalText([]byte(c.FormValue("pointsAwarded"))); err != nil {
		fields["pointsAwarded"] = "must be an integer"
	}
	if err := in.NumberOfVideos.UnmarshalText([]byte(c.FormValue("numberOfVideos"))); err != nil {
		fields["numberOfVideos"] = "must be an integer"
	}
	if v := strings.TrimSpace(c.FormValue("rating")); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fields["rating"] = "must be a number"
		} else {
			in.Rating = &rating
		}
	}
	if v := strings.TrimSpace(c.FormValue("chapters")); v != "" {
		if err := json.Unmarshal([]byte(v), &in.Chapters); err != nil {
			fields["chapters"] = "must be a JSON array of chapters"
		}
	}

	if len(fields) > 0 {
		return nil, types.NewValidationError(fields)
	}
	return in, nil
}
