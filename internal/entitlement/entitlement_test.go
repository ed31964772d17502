package entitlement_test

import (
	"errors"
	"testing"

	"github.com/localnerve/coursemart/internal/entitlement"
	"github.com/localnerve/coursemart/internal/models"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// course builds a course with the given number of topics per chapter
func course(topicsPerChapter ...int) *models.Course {
	c := &models.Course{ID: "course-1", PointsAwarded: 50, Instructor: models.Instructor{Email: "teacher@example.com"}}
	for ci, n := range topicsPerChapter {
		ch := models.Chapter{Title: "chapter", Position: ci}
		for ti := 0; ti < n; ti++ {
			ch.Topics = append(ch.Topics, models.Topic{
				Title:    "topic",
				Position: ti,
				VideoURL: "https://videos.example.com/" + string(rune('a'+ci)) + string(rune('0'+ti)),
			})
		}
		c.Chapters = append(c.Chapters, ch)
	}
	c.NumberOfVideos = c.TopicCount()
	return c
}

func TestCanPlayPurchasedPlaysAnything(t *testing.T) {
	c := course(2, 3)
	for ci := range c.Chapters {
		for ti := range c.Chapters[ci].Topics {
			assert.True(t, entitlement.CanPlay(c, entitlement.TopicRef{Chapter: ci, Topic: ti}, true))
		}
	}
}

func TestCanPlayFreePreviewOnly(t *testing.T) {
	c := course(2, 1)

	assert.True(t, entitlement.CanPlay(c, entitlement.TopicRef{Chapter: 0, Topic: 0}, false))
	assert.False(t, entitlement.CanPlay(c, entitlement.TopicRef{Chapter: 0, Topic: 1}, false))
	assert.False(t, entitlement.CanPlay(c, entitlement.TopicRef{Chapter: 1, Topic: 0}, false))
}

func TestCanPlayNoPreviewSlot(t *testing.T) {
	tests := []struct {
		name   string
		course *models.Course
	}{
		{"no chapters", course()},
		{"empty first chapter", course(0, 2)},
		{"nil course", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, entitlement.CanPlay(tt.course, entitlement.FreePreview, false))
			assert.False(t, entitlement.CanPlay(tt.course, entitlement.TopicRef{Chapter: 1, Topic: 0}, false))
			assert.False(t, entitlement.CanPlay(tt.course, entitlement.TopicRef{Chapter: -1, Topic: -1}, false))
		})
	}
}

func TestTopicByVideoURL(t *testing.T) {
	c := course(2, 2)

	ref, ok := entitlement.TopicByVideoURL(c, c.Chapters[1].Topics[1].VideoURL)
	require.True(t, ok)
	assert.Equal(t, entitlement.TopicRef{Chapter: 1, Topic: 1}, ref)

	ref, ok = entitlement.TopicByVideoURL(c, c.Chapters[0].Topics[0].VideoURL)
	require.True(t, ok)
	assert.True(t, entitlement.IsFreePreview(c, ref))

	_, ok = entitlement.TopicByVideoURL(c, "https://elsewhere.example.com/x")
	assert.False(t, ok)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		total, watched, want int
	}{
		{4, 3, 75},
		{4, 0, 0},
		{4, 4, 100},
		{3, 1, 33},
		{3, 2, 67},
		{8, 1, 13}, // 12.5 rounds up
		{0, 0, 0},
		{0, 5, 0},
		{4, 9, 100},
		{4, -1, 0},
		{-2, 1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, entitlement.Percentage(tt.total, tt.watched), "total=%d watched=%d", tt.total, tt.watched)
	}
}

func TestPercentageMonotonic(t *testing.T) {
	for total := 1; total <= 40; total++ {
		prev := entitlement.Percentage(total, 0)
		assert.Equal(t, 0, prev)
		for watched := 1; watched <= total; watched++ {
			p := entitlement.Percentage(total, watched)
			assert.GreaterOrEqual(t, p, prev, "total=%d watched=%d", total, watched)
			prev = p
		}
		assert.Equal(t, 100, prev)
	}
}

func TestComputeProgress(t *testing.T) {
	c := &models.Course{ID: "c", NumberOfVideos: 4}
	assert.Equal(t, 75, entitlement.ComputeProgress(c, &models.CourseProgress{CourseID: "c", NumberOfVideosWatched: 3}))
	assert.Equal(t, 0, entitlement.ComputeProgress(c, nil))
	assert.Equal(t, 0, entitlement.ComputeProgress(nil, &models.CourseProgress{NumberOfVideosWatched: 3}))
}

func TestRecordWatched(t *testing.T) {
	c := &models.Course{NumberOfVideos: 5}
	p := &models.CourseProgress{NumberOfVideosWatched: 2}

	assert.Equal(t, 3, entitlement.RecordWatched(p, c, 3))
	assert.Equal(t, 2, entitlement.RecordWatched(p, c, 1), "never decreases")
	assert.Equal(t, 5, entitlement.RecordWatched(p, c, 12), "clamped to video count")
	assert.Equal(t, 0, entitlement.RecordWatched(nil, c, -4))
}

func TestApplyPurchase(t *testing.T) {
	c := course(1, 1)
	user := &models.User{ID: "u1", Email: "learner@example.com", LearnerPoints: 100}

	updated, err := entitlement.ApplyPurchase(user, c)
	require.NoError(t, err)

	assert.Equal(t, 150, updated.LearnerPoints)
	require.Len(t, updated.CoursesBought, 1)
	assert.Equal(t, c.ID, updated.CoursesBought[0].CourseID)
	assert.Equal(t, 0, updated.CoursesBought[0].NumberOfVideosWatched)
	assert.Equal(t, 0, entitlement.ComputeProgress(c, &updated.CoursesBought[0]))

	// input untouched
	assert.Equal(t, 100, user.LearnerPoints)
	assert.Empty(t, user.CoursesBought)
}

func TestApplyPurchaseTwice(t *testing.T) {
	c := course(1)
	user := &models.User{ID: "u1", LearnerPoints: 100}

	once, err := entitlement.ApplyPurchase(user, c)
	require.NoError(t, err)

	twice, err := entitlement.ApplyPurchase(once, c)
	assert.Nil(t, twice)
	assert.ErrorIs(t, err, entitlement.ErrAlreadyPurchased)
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.Equal(t, 150, once.LearnerPoints)
	assert.Len(t, once.CoursesBought, 1)
}

func TestApplyPurchaseMissing(t *testing.T) {
	_, err := entitlement.ApplyPurchase(nil, course(1))
	assert.True(t, errors.Is(err, entitlement.ErrUserNotFound))
	assert.True(t, errors.Is(err, types.ErrNotFound))

	_, err = entitlement.ApplyPurchase(&models.User{}, nil)
	assert.True(t, errors.Is(err, entitlement.ErrCourseNotFound))
}

func TestCreatorAuthorization(t *testing.T) {
	c := course(1)
	teacher := &models.User{Email: " Teacher@Example.com", AccountType: models.AccountTeacher}
	student := &models.User{Email: "student@example.com", AccountType: models.AccountStudent}

	assert.True(t, entitlement.CanCreateCourse(teacher))
	assert.False(t, entitlement.CanCreateCourse(student))
	assert.False(t, entitlement.CanCreateCourse(nil))

	assert.True(t, entitlement.CanEditCourse(teacher, c))
	assert.False(t, entitlement.CanEditCourse(student, c))
	assert.False(t, entitlement.CanEditCourse(&models.User{}, &models.Course{}))
}

func TestBuildCourseView(t *testing.T) {
	c := course(2, 1)
	c.NumberOfVideos = 3

	anon := entitlement.BuildCourseView(c, nil)
	require.NotNil(t, anon)
	assert.False(t, anon.IsBought)
	assert.True(t, anon.Chapters[0].Topics[0].Playable)
	assert.NotEmpty(t, anon.Chapters[0].Topics[0].VideoURL)
	assert.False(t, anon.Chapters[0].Topics[1].Playable)
	assert.Empty(t, anon.Chapters[0].Topics[1].VideoURL)
	assert.False(t, anon.Chapters[1].Topics[0].Playable)

	buyer := &models.User{ID: "u", CoursesBought: []models.CourseProgress{{CourseID: c.ID, NumberOfVideosWatched: 2}}}
	bought := entitlement.BuildCourseView(c, buyer)
	assert.True(t, bought.IsBought)
	assert.False(t, bought.IsCreator)
	assert.Equal(t, 67, bought.PercentageCompleted)
	assert.True(t, bought.Chapters[1].Topics[0].Playable)

	owner := entitlement.BuildCourseView(c, &models.User{Email: "teacher@example.com", AccountType: models.AccountTeacher})
	assert.True(t, owner.IsCreator)
	assert.False(t, owner.IsBought)
	assert.True(t, owner.Chapters[0].Topics[1].Playable)
}
