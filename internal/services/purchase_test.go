package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/localnerve/coursemart/internal/entitlement"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/services"
	"github.com/localnerve/coursemart/internal/testutil"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseCourse(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, "points", "teacher@example.com", 50, 2)
	testutil.CreateUser(t, db, "sam@example.com", models.AccountStudent, 100)

	result, err := services.PurchaseCourse(ctx, db, db, "Sam@Example.com", course.ID)
	require.NoError(t, err)
	assert.True(t, result.IsBought)
	assert.Equal(t, course.ID, result.Course.ID)
	assert.Equal(t, 150, result.User.LearnerPoints)
	require.Len(t, result.User.CoursesBought, 1)
	assert.Equal(t, course.ID, result.User.CoursesBought[0].CourseID)
	assert.Zero(t, result.User.CoursesBought[0].NumberOfVideosWatched)

	stored, err := services.GetUserByEmail(ctx, db, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, 150, stored.LearnerPoints)
	assert.Len(t, stored.CoursesBought, 1)

	bought, err := services.HasPurchased(ctx, db, "sam@example.com", course.ID)
	require.NoError(t, err)
	assert.True(t, bought)
}

func TestPurchaseCourseTwice(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, "once", "teacher@example.com", 50, 1)
	testutil.CreateUser(t, db, "sam@example.com", models.AccountStudent, 0)

	_, err := services.PurchaseCourse(ctx, db, db, "sam@example.com", course.ID)
	require.NoError(t, err)

	_, err = services.PurchaseCourse(ctx, db, db, "sam@example.com", course.ID)
	assert.True(t, errors.Is(err, entitlement.ErrAlreadyPurchased))
	assert.Equal(t, 409, types.Classify(err).Code)

	stored, err := services.GetUserByEmail(ctx, db, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, 50, stored.LearnerPoints)
	assert.Len(t, stored.CoursesBought, 1)
}

// The in-memory store holds a single connection, so the two purchases run one
// after the other here. The row lock race runs against MariaDB in TestWithMariaDB.
func TestPurchaseCourseOverlapping(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, "race", "teacher@example.com", 50, 1)
	testutil.CreateUser(t, db, "sam@example.com", models.AccountStudent, 100)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = services.PurchaseCourse(ctx, db, db, "sam@example.com", course.ID)
		}(i)
	}
	wg.Wait()

	succeeded, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, entitlement.ErrAlreadyPurchased):
			duplicates++
		default:
			t.Errorf("unexpected purchase error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicates)

	stored, err := services.GetUserByEmail(ctx, db, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, 150, stored.LearnerPoints)
	assert.Len(t, stored.CoursesBought, 1)
}

func TestPurchaseCourseMissing(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, "exists", "teacher@example.com", 0, 1)
	testutil.CreateUser(t, db, "sam@example.com", models.AccountStudent, 0)

	_, err := services.PurchaseCourse(ctx, db, db, "sam@example.com", "missing")
	assert.True(t, errors.Is(err, entitlement.ErrCourseNotFound))

	_, err = services.PurchaseCourse(ctx, db, db, "nobody@example.com", course.ID)
	assert.True(t, errors.Is(err, entitlement.ErrUserNotFound))

	bought, err := services.HasPurchased(ctx, db, "nobody@example.com", course.ID)
	require.NoError(t, err)
	assert.False(t, bought)
}

func TestRecordVideosWatched(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, db, "watch", "teacher@example.com", 0, 3, 1)
	testutil.CreateUser(t, db, "sam@example.com", models.AccountStudent, 0)

	_, err := services.RecordVideosWatched(ctx, db, db, "sam@example.com", course.ID, 1)
	assert.True(t, errors.Is(err, entitlement.ErrNotPurchased))
	assert.Equal(t, 403, types.Classify(err).Code)

	_, err = services.PurchaseCourse(ctx, db, db, "sam@example.com", course.ID)
	require.NoError(t, err)

	progress, err := services.RecordVideosWatched(ctx, db, db, "sam@example.com", course.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.NumberOfVideosWatched)
	assert.Equal(t, 75, progress.PercentageCompleted)

	// Progress never moves backwards
	progress, err = services.RecordVideosWatched(ctx, db, db, "sam@example.com", course.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.NumberOfVideosWatched)

	// and is capped at the course's video count
	progress, err = services.RecordVideosWatched(ctx, db, db, "sam@example.com", course.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 4, progress.NumberOfVideosWatched)
	assert.Equal(t, 100, progress.PercentageCompleted)

	_, err = services.RecordVideosWatched(ctx, db, db, "sam@example.com", course.ID, -1)
	assert.True(t, errors.Is(err, types.ErrValidation))

	_, err = services.RecordVideosWatched(ctx, db, db, "sam@example.com", "missing", 1)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestHealthCheck(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testutil.Config()

	result := services.HealthCheck(context.Background(), cfg, db, db)
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Catalog)
	assert.Equal(t, "ok", result.Users)
	assert.Equal(t, "n/a", result.Identity)

	cfg.IdentityProvider = "authorizer"
	cfg.AuthzURL = "http://127.0.0.1:1"
	result = services.HealthCheck(context.Background(), cfg, db, nil)
	assert.False(t, result.Healthy())
	assert.Equal(t, "error", result.Users)
	assert.Equal(t, "unreachable", result.Identity)
	assert.NotEmpty(t, result.ErrorMessage)
}
