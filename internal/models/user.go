package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account types
const (
	AccountTeacher = "teacher"
	AccountStudent = "student"
)

// DefaultLevel is the level given to new users
const DefaultLevel = "Beginner"

// User is a learner or teacher profile. Email is the lookup key for every API.
type User struct {
	ID            string           `gorm:"type:char(36);primaryKey" json:"-"`
	Username      string           `gorm:"size:255;not null" json:"username"`
	Email         string           `gorm:"size:255;not null;uniqueIndex" json:"email"`
	AccountType   string           `gorm:"size:16;not null" json:"accountType"`
	LearnerPoints int              `gorm:"not null;default:0" json:"learnerPoints"`
	Level         string           `gorm:"size:64" json:"level"`
	Achievements  Labels           `json:"achievements"`
	CoursesBought []CourseProgress `gorm:"constraint:OnDelete:CASCADE" json:"coursesBought"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// CourseProgress records a purchased course and how much of it was watched.
// The (user, course) pair is unique; PercentageCompleted is derived on read.
type CourseProgress struct {
	ID                    uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID                string    `gorm:"type:char(36);not null;index:idx_user_course,unique" json:"-"`
	CourseID              string    `gorm:"type:char(36);not null;index:idx_user_course,unique" json:"courseId"`
	NumberOfVideosWatched int       `gorm:"not null;default:0" json:"numberOfVideosWatched"`
	PercentageCompleted   int       `gorm:"-" json:"percentageCompleted"`
	CreatedAt             time.Time `json:"purchasedAt"`
	UpdatedAt             time.Time `json:"-"`
}

// BeforeCreate assigns the user identifier and normalizes the email key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// Progress returns the progress entry for a course, or nil when not purchased
func (u *User) Progress(courseID string) *CourseProgress {
	if u == nil {
		return nil
	}
	for i := range u.CoursesBought {
		if u.CoursesBought[i].CourseID == courseID {
			return &u.CoursesBought[i]
		}
	}
	return nil
}

// NormalizeEmail lower-cases and trims an email so it can be used as a key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for CourseProgress
func (CourseProgress) TableName() string {
	return "user_course_progress"
}
