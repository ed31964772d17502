// entitlement.go
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

// Package entitlement decides what a user may watch and how far through a course they are.
// Everything here is a pure function of its inputs; persistence lives in services.
package entitlement

import (
	"fmt"
	"math"

	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/types"
)

var (
	// ErrAlreadyPurchased is returned when the course is already in the user's purchases
	ErrAlreadyPurchased = fmt.Errorf("course already purchased: %w", types.ErrConflict)
	// ErrNotPurchased is returned when a purchase is required
	ErrNotPurchased = fmt.Errorf("course not purchased: %w", types.ErrUnauthorized)
	// ErrCourseNotFound is returned when the course does not exist
	ErrCourseNotFound = fmt.Errorf("course not found: %w", types.ErrNotFound)
	// ErrUserNotFound is returned when the user does not exist
	ErrUserNotFound = fmt.Errorf("user not found: %w", types.ErrNotFound)
)

// TopicRef addresses a topic by chapter index and topic index within the chapter
type TopicRef struct {
	Chapter int `json:"chapter"`
	Topic   int `json:"topic"`
}

// FreePreview is the topic every visitor may play
var FreePreview = TopicRef{Chapter: 0, Topic: 0}

// Exists reports whether ref addresses a topic in the course
func Exists(course *models.Course, ref TopicRef) bool {
	if course == nil || ref.Chapter < 0 || ref.Topic < 0 {
		return false
	}
	if ref.Chapter >= len(course.Chapters) {
		return false
	}
	return ref.Topic < len(course.Chapters[ref.Chapter].Topics)
}

// IsFreePreview reports whether ref is the free preview slot and that slot exists
func IsFreePreview(course *models.Course, ref TopicRef) bool {
	return ref == FreePreview && Exists(course, ref)
}

// CanPlay reports whether the topic may be played. Purchasers may play anything;
// everyone else only the free preview. A course without a first topic has no preview.
func CanPlay(course *models.Course, ref TopicRef, purchased bool) bool {
	if purchased {
		return true
	}
	return IsFreePreview(course, ref)
}

// TopicByVideoURL resolves a video url to the first topic that carries it
func TopicByVideoURL(course *models.Course, videoURL string) (TopicRef, bool) {
	if course == nil || videoURL == "" {
		return TopicRef{}, false
	}
	for c, chapter := range course.Chapters {
		for t, topic := range chapter.Topics {
			if topic.VideoURL == videoURL {
				return TopicRef{Chapter: c, Topic: t}, true
			}
		}
	}
	return TopicRef{}, false
}

// Percentage is watched/total as a whole percentage, rounded half away from zero
// and clamped to [0, 100]. A course with no videos is 0% complete.
func Percentage(total, watched int) int {
	if total <= 0 || watched <= 0 {
		return 0
	}
	if watched >= total {
		return 100
	}
	return int(math.Round(float64(watched) / float64(total) * 100))
}

// ComputeProgress is the completion percentage of a purchased course
func ComputeProgress(course *models.Course, progress *models.CourseProgress) int {
	if course == nil || progress == nil {
		return 0
	}
	return Percentage(course.NumberOfVideos, progress.NumberOfVideosWatched)
}

// RecordWatched returns the watched count after reporting watched videos.
// The count never decreases and never exceeds the course's video count.
func RecordWatched(progress *models.CourseProgress, course *models.Course, watched int) int {
	current := 0
	if progress != nil {
		current = progress.NumberOfVideosWatched
	}
	if course != nil && course.NumberOfVideos >= 0 && watched > course.NumberOfVideos {
		watched = course.NumberOfVideos
	}
	if watched < current {
		return current
	}
	return watched
}

// HasPurchased reports whether the user bought the course
func HasPurchased(user *models.User, courseID string) bool {
	return user.Progress(courseID) != nil
}

// ApplyPurchase returns a copy of user with the course appended to its purchases
// and the course points added. The input user is never modified.
func ApplyPurchase(user *models.User, course *models.Course) (*models.User, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if HasPurchased(user, course.ID) {
		return nil, ErrAlreadyPurchased
	}

	updated := *user
	updated.CoursesBought = make([]models.CourseProgress, len(user.CoursesBought), len(user.CoursesBought)+1)
	copy(updated.CoursesBought, user.CoursesBought)
	updated.CoursesBought = append(updated.CoursesBought, models.CourseProgress{
		UserID:   user.ID,
		CourseID: course.ID,
	})
	if course.PointsAwarded > 0 {
		updated.LearnerPoints += course.PointsAwarded
	}

	return &updated, nil
}

// CanCreateCourse reports whether the user may author courses
func CanCreateCourse(user *models.User) bool {
	return user != nil && user.AccountType == models.AccountTeacher
}

// CanEditCourse reports whether the user is the course's instructor
func CanEditCourse(user *models.User, course *models.Course) bool {
	if user == nil || course == nil {
		return false
	}
	email := models.NormalizeEmail(user.Email)
	return email != "" && email == models.NormalizeEmail(course.Instructor.Email)
}
