package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/coursemart/internal/entitlement"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UserInput is a new user profile, mirrored from the identity provider at signup
type UserInput struct {
	Username     string            `json:"username" validate:"required,max=255"`
	Email        string            `json:"email" validate:"required,email,max=255"`
	AccountType  string            `json:"accountType" validate:"required,oneof=teacher student"`
	Level        string            `json:"level" validate:"max=64"`
	Achievements types.FlexStrings `json:"achievements" validate:"max=64,dive,max=128"`
}

// ProgressView is one purchased course on a user's dashboard
type ProgressView struct {
	CourseID              string `json:"courseId"`
	CourseTitle           string `json:"courseTitle"`
	Thumbnail             string `json:"thumbnail"`
	NumberOfVideos        int    `json:"numberOfVideos"`
	NumberOfVideosWatched int    `json:"numberOfVideosWatched"`
	PercentageCompleted   int    `json:"percentageCompleted"`
}

// UserProfile is a user with progress resolved against the catalog
type UserProfile struct {
	*models.User
	Courses []ProgressView `json:"courses"`
}

// quiet returns a context bound session without query logging
func quiet(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// CreateUser validates and stores a new user. Points start at zero and purchases empty.
func CreateUser(ctx context.Context, db *gorm.DB, in *UserInput) (*models.User, error) {
	in.Email = models.NormalizeEmail(in.Email)
	in.Achievements = in.Achievements.Normalize()
	if err := Validate(in); err != nil {
		return nil, err
	}

	level := in.Level
	if level == "" {
		level = models.DefaultLevel
	}

	user := models.User{
		Username:      in.Username,
		Email:         in.Email,
		AccountType:   in.AccountType,
		Level:         level,
		Achievements:  models.Labels(in.Achievements.Slice()),
		CoursesBought: []models.CourseProgress{},
	}

	if err := db.WithContext(ctx).Omit("CoursesBought").Create(&user).Error; err != nil {
		err = types.FromStore(err)
		if errors.Is(err, types.ErrConflict) {
			return nil, fmt.Errorf("user %s already exists: %w", in.Email, types.ErrConflict)
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail returns the user with purchases in purchase order
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := quiet(ctx, db).
		Preload("CoursesBought", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", email, entitlement.ErrUserNotFound)
		}
		return nil, types.FromStore(err)
	}
	if user.CoursesBought == nil {
		user.CoursesBought = []models.CourseProgress{}
	}
	return &user, nil
}

// GetUserProfile loads the user and resolves each purchase against the catalog.
// Purchased courses missing from the catalog are left out of Courses.
func GetUserProfile(ctx context.Context, userDB, catalogDB *gorm.DB, email string) (*UserProfile, error) {
	user, err := GetUserByEmail(ctx, userDB, email)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.CoursesBought))
	for _, p := range user.CoursesBought {
		ids = append(ids, p.CourseID)
	}

	courses, err := CoursesForIds(ctx, catalogDB, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Course, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
	}

	profile := &UserProfile{User: user, Courses: make([]ProgressView, 0, len(courses))}
	for i := range user.CoursesBought {
		p := &user.CoursesBought[i]
		course, ok := byID[p.CourseID]
		if !ok {
			continue
		}
		p.PercentageCompleted = entitlement.ComputeProgress(course, p)
		profile.Courses = append(profile.Courses, ProgressView{
			CourseID:              course.ID,
			CourseTitle:           course.Title,
			Thumbnail:             course.Thumbnail,
			NumberOfVideos:        course.NumberOfVideos,
			NumberOfVideosWatched: p.NumberOfVideosWatched,
			PercentageCompleted:   p.PercentageCompleted,
		})
	}

	return profile, nil
}

// CreatedCourses lists the courses authored by the teacher with the given email
func CreatedCourses(ctx context.Context, userDB, catalogDB *gorm.DB, email string) ([]models.Course, error) {
	user, err := GetUserByEmail(ctx, userDB, email)
	if err != nil {
		return nil, err
	}
	if !entitlement.CanCreateCourse(user) {
		return nil, fmt.Errorf("%s is not a teacher: %w", user.Email, types.ErrUnauthorized)
	}
	return CoursesByInstructorEmail(ctx, catalogDB, user.Email)
}
