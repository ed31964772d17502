package services_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/localnerve/coursemart/internal/database"
	"github.com/localnerve/coursemart/internal/entitlement"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/services"
	"github.com/localnerve/coursemart/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestWithMariaDB runs the purchase flow against MariaDB with separate catalog and user accounts
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	opts := testutil.DefaultMariaDBOptions()
	if image := os.Getenv("DB_IMAGE"); image != "" {
		opts.Image = image
	}

	container, err := testutil.StartMariaDB(ctx, opts)
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer container.Terminate()

	cfg := container.Config()
	catalogDB, err := database.Connect(cfg)
	require.NoError(t, err)
	defer database.Close(catalogDB)

	require.NoError(t, database.AutoMigrate(catalogDB))

	userDB, err := database.ConnectUser(cfg)
	require.NoError(t, err)
	defer database.Close(userDB)

	t.Run("ConcurrentPurchase", func(t *testing.T) {
		testConcurrentPurchase(t, catalogDB, userDB)
	})

	t.Run("Health", func(t *testing.T) {
		result := services.HealthCheck(ctx, cfg, catalogDB, userDB)
		assert.True(t, result.Healthy(), result.ErrorMessage)
	})
}

func testConcurrentPurchase(t *testing.T, catalogDB, userDB *gorm.DB) {
	ctx := context.Background()
	course := testutil.CreateCourse(t, catalogDB, "mariadb", "teacher@example.com", 50, 2, 2)

	_, err := services.CreateUser(ctx, userDB, &services.UserInput{
		Username:    "sam",
		Email:       "sam@example.com",
		AccountType: models.AccountStudent,
	})
	require.NoError(t, err)
	require.NoError(t, userDB.Model(&models.User{}).
		Where("email = ?", "sam@example.com").
		Update("learner_points", 100).Error)

	const buyers = 4
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = services.PurchaseCourse(ctx, userDB, catalogDB, "sam@example.com", course.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, entitlement.ErrAlreadyPurchased), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	profile, err := services.GetUserProfile(ctx, userDB, catalogDB, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, 150, profile.LearnerPoints)
	require.Len(t, profile.Courses, 1)

	progress, err := services.RecordVideosWatched(ctx, userDB, catalogDB, "sam@example.com", course.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 75, progress.PercentageCompleted)
}
