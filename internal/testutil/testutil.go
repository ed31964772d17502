// Package testutil holds the shared fixtures for package tests: an in-memory
// store, a fake identity provider, catalog fixtures and response helpers.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/localnerve/coursemart/internal/config"
	"github.com/localnerve/coursemart/internal/database"
	"github.com/localnerve/coursemart/internal/identity"
	"github.com/localnerve/coursemart/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB creates a migrated in-memory SQLite database private to the test.
// One connection keeps the in-memory database alive and serializes writers.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:coursemart%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

// Config returns a configuration suitable for tests
func Config() *config.Config {
	return &config.Config{
		Port:             "5000",
		CORSOrigins:      "*",
		DBType:           "sqlite",
		DBDatabase:       ":memory:",
		StoreTimeout:     5 * time.Second,
		IdentityTimeout:  time.Second,
		IdentityProvider: config.IdentityJWT,
		JWTSecret:        "test-secret",
	}
}

// Provider is a fake identity provider. The bearer token is the caller's email.
type Provider struct {
	Err error
}

// CurrentIdentity returns the bearer token as the identity email
func (p *Provider) CurrentIdentity(ctx context.Context, creds identity.Credentials) (*identity.Identity, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if creds.BearerToken == "" {
		return nil, identity.ErrNoIdentity
	}
	return &identity.Identity{Email: creds.BearerToken, DisplayName: creds.BearerToken}, nil
}

// Bearer returns the Authorization header value that makes Provider resolve email
func Bearer(email string) string {
	return "Bearer " + email
}

// CourseFixture builds an unsaved course with the given number of topics per chapter
func CourseFixture(title, instructorEmail string, points int, topicsPerChapter ...int) *models.Course {
	c := &models.Course{
		Title:         title,
		Description:   title + " description",
		Thumbnail:     "/images/" + title + ".png",
		Instructor:    models.Instructor{Name: "Instructor", Email: instructorEmail},
		Tags:          models.Labels{"test"},
		PointsAwarded: points,
	}
	for ci, n := range topicsPerChapter {
		ch := models.Chapter{Position: ci, Title: fmt.Sprintf("Chapter %d", ci+1)}
		for ti := 0; ti < n; ti++ {
			ch.Topics = append(ch.Topics, models.Topic{
				Position: ti,
				Title:    fmt.Sprintf("Topic %d.%d", ci+1, ti+1),
				VideoURL: fmt.Sprintf("/videos/%s/%d-%d.mp4", title, ci, ti),
			})
		}
		c.Chapters = append(c.Chapters, ch)
	}
	c.NumberOfVideos = c.TopicCount()
	return c
}

// CreateCourse stores a course fixture
func CreateCourse(t *testing.T, db *gorm.DB, title, instructorEmail string, points int, topicsPerChapter ...int) *models.Course {
	t.Helper()
	c := CourseFixture(title, instructorEmail, points, topicsPerChapter...)
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	return c
}

// CreateUser stores a user
func CreateUser(t *testing.T, db *gorm.DB, email, accountType string, points int) *models.User {
	t.Helper()
	u := &models.User{
		Username:      email,
		Email:         email,
		AccountType:   accountType,
		LearnerPoints: points,
		Level:         models.DefaultLevel,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Errorf("Expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(body))
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}
