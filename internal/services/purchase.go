package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/coursemart/internal/entitlement"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// PurchaseResult is the outcome of a successful purchase
type PurchaseResult struct {
	User     *models.User   `json:"user"`
	Course   *models.Course `json:"course"`
	IsBought bool           `json:"isBought"`
}

// lockedUsers scopes a query to the users table with an exclusive row lock.
// SQL Server takes the lock through a table hint and rejects FOR UPDATE outside
// a cursor; SQLite drops the locking clause and relies on its writer lock.
func lockedUsers(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlserver" {
		return tx.Table("users WITH (UPDLOCK, ROWLOCK)")
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockUser loads the user row under lock along with its purchases
func lockUser(tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := lockedUsers(tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", email, entitlement.ErrUserNotFound)
		}
		return nil, types.FromStore(err)
	}

	if err := tx.Where("user_id = ?", user.ID).Order("id ASC").Find(&user.CoursesBought).Error; err != nil {
		return nil, types.FromStore(err)
	}
	return &user, nil
}

// PurchaseCourse appends the course to the user's purchases and awards its points.
// The user row is locked for the transaction and the (user, course) unique index
// turns a racing duplicate into ErrAlreadyPurchased, so at most one purchase lands.
func PurchaseCourse(ctx context.Context, userDB, catalogDB *gorm.DB, email, courseID string) (*PurchaseResult, error) {
	course, err := GetCourse(ctx, catalogDB, courseID)
	if err != nil {
		return nil, err
	}

	var updated *models.User
	err = userDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, email)
		if err != nil {
			return err
		}

		updated, err = entitlement.ApplyPurchase(user, course)
		if err != nil {
			return err
		}

		progress := &updated.CoursesBought[len(updated.CoursesBought)-1]
		if err := tx.Create(progress).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entitlement.ErrAlreadyPurchased
			}
			return types.FromStore(err)
		}

		if course.PointsAwarded > 0 {
			if err := tx.Model(&models.User{}).
				Where("id = ?", user.ID).
				Update("learner_points", gorm.Expr("learner_points + ?", course.PointsAwarded)).Error; err != nil {
				return types.FromStore(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, types.FromStore(err)
	}

	for i := range updated.CoursesBought {
		p := &updated.CoursesBought[i]
		if p.CourseID == course.ID {
			p.PercentageCompleted = entitlement.ComputeProgress(course, p)
		}
	}

	return &PurchaseResult{User: updated, Course: course, IsBought: true}, nil
}

// HasPurchased reports whether the user bought the course. An unknown user has bought nothing.
func HasPurchased(ctx context.Context, userDB *gorm.DB, email, courseID string) (bool, error) {
	var count int64
	err := quiet(ctx, userDB).
		Model(&models.CourseProgress{}).
		Joins("JOIN users ON users.id = user_course_progress.user_id").
		Where("users.email = ? AND user_course_progress.course_id = ?", models.NormalizeEmail(email), courseID).
		Count(&count).Error
	if err != nil {
		return false, types.FromStore(err)
	}
	return count > 0, nil
}

// RecordVideosWatched stores a new watched count for a purchased course.
// The count only moves forward and is capped at the course's video count.
func RecordVideosWatched(ctx context.Context, userDB, catalogDB *gorm.DB, email, courseID string, watched int) (*models.CourseProgress, error) {
	if watched < 0 {
		return nil, types.NewValidationError(map[string]string{
			"numberOfVideosWatched": "must be greater than or equal to 0",
		})
	}

	course, err := GetCourse(ctx, catalogDB, courseID)
	if err != nil {
		return nil, err
	}

	var progress *models.CourseProgress
	err = userDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, email)
		if err != nil {
			return err
		}

		progress = user.Progress(course.ID)
		if progress == nil {
			return entitlement.ErrNotPurchased
		}

		next := entitlement.RecordWatched(progress, course, watched)
		if next == progress.NumberOfVideosWatched {
			return nil
		}
		progress.NumberOfVideosWatched = next
		return types.FromStore(tx.Model(progress).Update("number_of_videos_watched", next).Error)
	})
	if err != nil {
		return nil, types.FromStore(err)
	}

	progress.PercentageCompleted = entitlement.ComputeProgress(course, progress)
	return progress, nil
}
