package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/types"
	"gorm.io/gorm"
)

// SeedCatalog loads courses from a JSON array into an empty catalog.
// It does nothing when the catalog already has courses and returns the number inserted.
func SeedCatalog(ctx context.Context, db *gorm.DB, raw []byte) (int, error) {
	var count int64
	if err := quiet(ctx, db).Model(&models.Course{}).Count(&count).Error; err != nil {
		return 0, types.FromStore(err)
	}
	if count > 0 {
		return 0, nil
	}

	var courses []models.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		return 0, fmt.Errorf("invalid seed catalog: %w", err)
	}

	for i := range courses {
		c := &courses[i]
		c.Instructor.Email = models.NormalizeEmail(c.Instructor.Email)
		for ci := range c.Chapters {
			c.Chapters[ci].Position = ci
			for ti := range c.Chapters[ci].Topics {
				c.Chapters[ci].Topics[ti].Position = ti
			}
		}
		c.NumberOfVideos = c.TopicCount()
	}

	if len(courses) == 0 {
		return 0, nil
	}
	if err := db.WithContext(ctx).Create(&courses).Error; err != nil {
		return 0, types.FromStore(err)
	}

	log.Printf("Seeded catalog with %d courses", len(courses))
	return len(courses), nil
}
