// course.go
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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Instructor identifies the teacher who owns a course. Email is the owner key.
type Instructor struct {
	Name   string `gorm:"size:255" json:"name"`
	Avatar string `gorm:"size:1024" json:"avatar"`
	Email  string `gorm:"size:255;index" json:"email"`
}

// Course is a purchasable course with an ordered chapter/topic structure
type Course struct {
	ID             string     `gorm:"type:char(36);primaryKey" json:"id"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Thumbnail      string     `gorm:"size:1024" json:"thumbnail"`
	Instructor     Instructor `gorm:"embedded;embeddedPrefix:instructor_" json:"instructor"`
	Tags           Labels     `json:"tags"`
	Rating         *float64   `json:"rating,omitempty"`
	PointsAwarded  int        `gorm:"not null;default:0" json:"pointsAwarded"`
	NumberOfVideos int        `gorm:"not null;default:0" json:"numberOfVideos"`
	Chapters       []Chapter  `gorm:"constraint:OnDelete:CASCADE" json:"chapters"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Chapter is an ordered group of topics. Position is the chapter index.
type Chapter struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	CourseID  string    `gorm:"type:char(36);not null;index" json:"-"`
	Position  int       `gorm:"not null" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Topics    []Topic   `gorm:"constraint:OnDelete:CASCADE" json:"topics"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Topic is a single playable video. Position is the topic index within its chapter.
type Topic struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ChapterID      uint64    `gorm:"not null;index" json:"-"`
	Position       int       `gorm:"not null" json:"-"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	VideoURL       string    `gorm:"size:1024" json:"videoUrl"`
	VideoThumbnail *string   `gorm:"size:1024" json:"videoThumbnail,omitempty"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// BeforeCreate assigns the course identifier
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TopicCount is the number of topics across all chapters
func (c *Course) TopicCount() int {
	n := 0
	for _, ch := range c.Chapters {
		n += len(ch.Topics)
	}
	return n
}

// TableName overrides the table name for Course
func (Course) TableName() string {
	return "courses"
}

// TableName overrides the table name for Chapter
func (Chapter) TableName() string {
	return "course_chapters"
}

// TableName overrides the table name for Topic
func (Topic) TableName() string {
	return "course_topics"
}
