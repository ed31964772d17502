package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/coursemart/internal/entitlement"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/services"
	"github.com/localnerve/coursemart/internal/testutil"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCourse(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	created := testutil.CreateCourse(t, db, "go-basics", "teacher@example.com", 50, 2, 3)

	course, err := services.GetCourse(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-basics", course.Title)
	assert.Equal(t, 5, course.NumberOfVideos)
	require.Len(t, course.Chapters, 2)
	assert.Len(t, course.Chapters[0].Topics, 2)
	assert.Len(t, course.Chapters[1].Topics, 3)
	assert.Equal(t, "Topic 2.1", course.Chapters[1].Topics[0].Title)
	assert.Equal(t, models.Labels{"test"}, course.Tags)

	_, err = services.GetCourse(ctx, db, "missing")
	assert.True(t, errors.Is(err, entitlement.ErrCourseNotFound))
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestListCourses(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	courses, err := services.ListCourses(ctx, db)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	testutil.CreateCourse(t, db, "first", "teacher@example.com", 0, 1)
	testutil.CreateCourse(t, db, "second", "teacher@example.com", 0, 1)

	courses, err = services.ListCourses(ctx, db)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestCoursesForIds(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.CreateCourse(t, db, "a", "teacher@example.com", 0, 1)
	b := testutil.CreateCourse(t, db, "b", "teacher@example.com", 0, 2)

	courses, err := services.CoursesForIds(ctx, db, []string{b.ID, "missing", a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, b.ID, courses[0].ID)
	assert.Equal(t, a.ID, courses[1].ID)
	assert.Len(t, courses[0].Chapters[0].Topics, 2)

	courses, err = services.CoursesForIds(ctx, db, nil)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	courses, err = services.CoursesForIds(ctx, db, []string{"missing"})
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestCoursesByInstructorEmail(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	testutil.CreateCourse(t, db, "mine", "teacher@example.com", 0, 1)
	testutil.CreateCourse(t, db, "theirs", "other@example.com", 0, 1)

	courses, err := services.CoursesByInstructorEmail(ctx, db, " Teacher@Example.com ")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "mine", courses[0].Title)
}

func validCourseInput() *services.CourseInput {
	return &services.CourseInput{
		Title:         "Concurrency",
		Description:   "Goroutines and channels",
		Tags:          types.FlexStrings{"go", " Go ", "channels"},
		PointsAwarded: 25,
		Chapters: []services.ChapterInput{
			{Title: "Intro", Topics: []services.TopicInput{
				{Title: "Welcome", VideoURL: "/v/1.mp4"},
				{Title: "Setup", VideoURL: "/v/2.mp4"},
			}},
			{Title: "Channels", Topics: []services.TopicInput{
				{Title: "Buffered", VideoURL: "/v/3.mp4"},
			}},
		},
	}
}

func TestCreateCourse(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	teacher := testutil.CreateUser(t, db, "Teacher@Example.com", models.AccountTeacher, 0)

	created, err := services.CreateCourse(ctx, db, teacher, validCourseInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 3, created.NumberOfVideos)
	assert.Equal(t, "teacher@example.com", created.Instructor.Email)
	assert.Equal(t, teacher.Username, created.Instructor.Name)

	course, err := services.GetCourse(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, course.PointsAwarded)
	require.Len(t, course.Chapters, 2)
	assert.Equal(t, "Setup", course.Chapters[0].Topics[1].Title)
	assert.Equal(t, "/v/3.mp4", course.Chapters[1].Topics[0].VideoURL)
}

func TestCreateCourseNumberOfVideos(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	teacher := testutil.CreateUser(t, db, "teacher@example.com", models.AccountTeacher, 0)

	in := validCourseInput()
	in.NumberOfVideos = 3
	course, err := services.CreateCourse(ctx, db, teacher, in)
	require.NoError(t, err)
	assert.Equal(t, 3, course.NumberOfVideos)

	in = validCourseInput()
	in.NumberOfVideos = 7
	_, err = services.CreateCourse(ctx, db, teacher, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrValidation))

	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Fields, "numberOfVideos")
}

func TestCreateCourseValidation(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	teacher := testutil.CreateUser(t, db, "teacher@example.com", models.AccountTeacher, 0)

	in := validCourseInput()
	in.Title = ""
	in.Chapters[1].Topics[0].VideoURL = ""
	in.PointsAwarded = -1

	_, err := services.CreateCourse(ctx, db, teacher, in)
	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 400, ce.Code)
	assert.Contains(t, ce.Fields, "title")
	assert.Contains(t, ce.Fields, "pointsAwarded")
	assert.Contains(t, ce.Fields, "chapters[1].topics[0].videoUrl")

	var count int64
	db.Model(&models.Course{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateCourseRequiresTeacher(t *testing.T) {
	db := testutil.NewDB(t)
	student := testutil.CreateUser(t, db, "student@example.com", models.AccountStudent, 0)

	_, err := services.CreateCourse(context.Background(), db, student, validCourseInput())
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
	assert.Equal(t, 403, types.Classify(err).Code)
}
