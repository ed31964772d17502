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
	"gorm.io/hints"
)

// CourseInput is the authored content of a new course. The instructor comes from the caller's identity.
type CourseInput struct {
	Title            string            `json:"title" form:"title" validate:"required,max=255"`
	Description      string            `json:"description" form:"description" validate:"max=20000"`
	Thumbnail        string            `json:"thumbnail" form:"thumbnail" validate:"max=1024"`
	InstructorAvatar string            `json:"instructorAvatar" form:"instructorAvatar" validate:"max=1024"`
	Tags             types.FlexStrings `json:"tags" form:"tags" validate:"max=32,dive,max=64"`
	Rating           *float64          `json:"rating,omitempty" form:"rating" validate:"omitempty,gte=0,lte=5"`
	PointsAwarded    types.FlexInt     `json:"pointsAwarded" form:"pointsAwarded" validate:"gte=0"`
	NumberOfVideos   types.FlexInt     `json:"numberOfVideos" form:"numberOfVideos" validate:"gte=0"`
	Chapters         []ChapterInput    `json:"chapters" form:"chapters" validate:"dive"`
}

// ChapterInput is one authored chapter
type ChapterInput struct {
	Title  string       `json:"title" validate:"required,max=255"`
	Topics []TopicInput `json:"topics" validate:"dive"`
}

// TopicInput is one authored topic
type TopicInput struct {
	Title          string  `json:"title" validate:"required,max=255"`
	Description    string  `json:"description" validate:"max=20000"`
	VideoURL       string  `json:"videoUrl" validate:"required,max=1024"`
	VideoThumbnail *string `json:"videoThumbnail,omitempty" validate:"omitempty,max=1024"`
}

// catalog returns a quiet session over the catalog tagged with a SQL comment naming the query
func catalog(ctx context.Context, db *gorm.DB, name string) *gorm.DB {
	return db.WithContext(ctx).
		Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Clauses(hints.Comment("select", "coursemart:"+name))
}

// withContent preloads chapters and topics in authored order
func withContent(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Chapters.Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

// ListCourses returns every course, oldest first
func ListCourses(ctx context.Context, db *gorm.DB) ([]models.Course, error) {
	courses := []models.Course{}
	if err := withContent(catalog(ctx, db, "list")).
		Order("created_at ASC").Order("id ASC").
		Find(&courses).Error; err != nil {
		return nil, types.FromStore(err)
	}
	return courses, nil
}

// GetCourse returns one course with its content
func GetCourse(ctx context.Context, db *gorm.DB, id string) (*models.Course, error) {
	var course models.Course
	err := withContent(catalog(ctx, db, "get")).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", id, entitlement.ErrCourseNotFound)
		}
		return nil, types.FromStore(err)
	}
	return &course, nil
}

// CoursesForIds fetches the courses in one query and returns them in the order of ids.
// Unknown and repeated ids are omitted. The result is never nil.
func CoursesForIds(ctx context.Context, db *gorm.DB, ids []string) ([]models.Course, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	result := make([]models.Course, 0, len(unique))
	if len(unique) == 0 {
		return result, nil
	}

	var found []models.Course
	if err := withContent(catalog(ctx, db, "batch")).
		Where("id IN ?", unique).
		Find(&found).Error; err != nil {
		return nil, types.FromStore(err)
	}

	byID := make(map[string]models.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	for _, id := range unique {
		if c, ok := byID[id]; ok {
			result = append(result, c)
		}
	}

	return result, nil
}

// CoursesByInstructorEmail returns the courses a teacher created, oldest first. Never nil.
func CoursesByInstructorEmail(ctx context.Context, db *gorm.DB, email string) ([]models.Course, error) {
	courses := []models.Course{}
	if err := withContent(catalog(ctx, db, "created")).
		Where("instructor_email = ?", models.NormalizeEmail(email)).
		Order("created_at ASC").Order("id ASC").
		Find(&courses).Error; err != nil {
		return nil, types.FromStore(err)
	}
	return courses, nil
}

// CreateCourse validates the input and stores a new course owned by author.
// numberOfVideos is derived from the topics; a conflicting non-zero value is rejected.
func CreateCourse(ctx context.Context, db *gorm.DB, author *models.User, in *CourseInput) (*models.Course, error) {
	if !entitlement.CanCreateCourse(author) {
		return nil, fmt.Errorf("only teachers can create courses: %w", types.ErrUnauthorized)
	}

	in.Tags = in.Tags.Normalize()
	if err := Validate(in); err != nil {
		return nil, err
	}

	course := models.Course{
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		Instructor: models.Instructor{
			Name:   author.Username,
			Avatar: in.InstructorAvatar,
			Email:  models.NormalizeEmail(author.Email),
		},
		Tags:          models.Labels(in.Tags.Slice()),
		Rating:        in.Rating,
		PointsAwarded: in.PointsAwarded.Int(),
		Chapters:      make([]models.Chapter, 0, len(in.Chapters)),
	}

	for c, ch := range in.Chapters {
		chapter := models.Chapter{Position: c, Title: ch.Title, Topics: make([]models.Topic, 0, len(ch.Topics))}
		for t, tp := range ch.Topics {
			chapter.Topics = append(chapter.Topics, models.Topic{
				Position:       t,
				Title:          tp.Title,
				Description:    tp.Description,
				VideoURL:       tp.VideoURL,
				VideoThumbnail: tp.VideoThumbnail,
			})
		}
		course.Chapters = append(course.Chapters, chapter)
	}

	topics := course.TopicCount()
	if n := in.NumberOfVideos.Int(); n != 0 && n != topics {
		return nil, types.NewValidationError(map[string]string{
			"numberOfVideos": fmt.Sprintf("must equal the number of topics (%d)", topics),
		})
	}
	course.NumberOfVideos = topics

	if err := db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, types.FromStore(err)
	}

	return &course, nil
}
