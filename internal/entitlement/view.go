package entitlement

import "github.com/localnerve/coursemart/internal/models"

// TopicView is a topic as the requesting user sees it. VideoURL is empty when locked.
type TopicView struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	VideoURL       string  `json:"videoUrl,omitempty"`
	VideoThumbnail *string `json:"videoThumbnail,omitempty"`
	Playable       bool    `json:"playable"`
}

// ChapterView is a chapter of topic views
type ChapterView struct {
	Title  string      `json:"title"`
	Topics []TopicView `json:"topics"`
}

// CourseView combines a course with one user's purchase and progress state
type CourseView struct {
	ID                    string            `json:"id"`
	Title                 string            `json:"title"`
	Description           string            `json:"description"`
	Thumbnail             string            `json:"thumbnail"`
	Instructor            models.Instructor `json:"instructor"`
	Tags                  []string          `json:"tags"`
	Rating                *float64          `json:"rating,omitempty"`
	PointsAwarded         int               `json:"pointsAwarded"`
	NumberOfVideos        int               `json:"numberOfVideos"`
	IsBought              bool              `json:"isBought"`
	IsCreator             bool              `json:"isCreator"`
	NumberOfVideosWatched int               `json:"numberOfVideosWatched"`
	PercentageCompleted   int               `json:"percentageCompleted"`
	Chapters              []ChapterView     `json:"chapters"`
}

// BuildCourseView computes the course page for user. A nil user is an anonymous visitor.
// The instructor sees their own course as if bought.
func BuildCourseView(course *models.Course, user *models.User) *CourseView {
	if course == nil {
		return nil
	}

	progress := user.Progress(course.ID)
	isCreator := CanEditCourse(user, course)
	unlocked := progress != nil || isCreator

	view := &CourseView{
		ID:             course.ID,
		Title:          course.Title,
		Description:    course.Description,
		Thumbnail:      course.Thumbnail,
		Instructor:     course.Instructor,
		Tags:           append([]string{}, course.Tags...),
		Rating:         course.Rating,
		PointsAwarded:  course.PointsAwarded,
		NumberOfVideos: course.NumberOfVideos,
		IsBought:       progress != nil,
		IsCreator:      isCreator,
		Chapters:       make([]ChapterView, 0, len(course.Chapters)),
	}
	if progress != nil {
		view.NumberOfVideosWatched = progress.NumberOfVideosWatched
		view.PercentageCompleted = ComputeProgress(course, progress)
	}

	for c, chapter := range course.Chapters {
		cv := ChapterView{Title: chapter.Title, Topics: make([]TopicView, 0, len(chapter.Topics))}
		for t, topic := range chapter.Topics {
			playable := CanPlay(course, TopicRef{Chapter: c, Topic: t}, unlocked)
			tv := TopicView{
				Title:          topic.Title,
				Description:    topic.Description,
				VideoThumbnail: topic.VideoThumbnail,
				Playable:       playable,
			}
			if playable {
				tv.VideoURL = topic.VideoURL
			}
			cv.Topics = append(cv.Topics, tv)
		}
		view.Chapters = append(view.Chapters, cv)
	}

	return view
}
