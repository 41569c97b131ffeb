package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coursecomment/coursecomment/internal/client/api"
	"github.com/coursecomment/coursecomment/internal/client/models"
)

var ErrValidation = errors.New("validation error")

const (
	MinScore = 1
	MaxScore = 5
)

// CourseService wraps the course, instructor, rating, comment, like and
// follow endpoints.
// Inputs are checked against the same rules the backend enforces so that
// obvious mistakes fail before a round trip.
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Search(ctx context.Context, query string) ([]models.Course, error)
	Get(ctx context.Context, id int64) (*models.CourseDetail, error)
	Instructor(ctx context.Context, id int64) (*models.InstructorDetail, error)
	Ratings(ctx context.Context, courseID int64) (*models.RatingSummary, error)
	InstructorRatings(ctx context.Context, courseID, instructorID int64) (*models.RatingSummary, error)
	MyRatings(ctx context.Context, courseID int64) (*models.RatingSummary, error)
	Rate(ctx context.Context, in models.RatingSubmission) error
	Comments(ctx context.Context, courseID int64) ([]models.Comment, error)
	InstructorComments(ctx context.Context, courseID, instructorID int64) ([]models.Comment, error)
	Comment(ctx context.Context, in models.CommentInput) (*models.Comment, error)
	Like(ctx context.Context, commentID int64) (int, error)
	Unlike(ctx context.Context, commentID int64) (int, error)
	Follow(ctx context.Context, courseID int64) error
	Unfollow(ctx context.Context, courseID int64) error
	Followed(ctx context.Context) ([]models.Course, error)
}

type courseService struct {
	client api.Client
}

func NewCourseService(client api.Client) CourseService {
	return &courseService{client: client}
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	return s.client.ListCourses(ctx)
}

func (s *courseService) Search(ctx context.Context, query string) ([]models.Course, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrValidation)
	}
	return s.client.SearchCourses(ctx, query)
}

func (s *courseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.client.GetCourse(ctx, id)
}

func (s *courseService) Instructor(ctx context.Context, id int64) (*models.InstructorDetail, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.client.GetInstructor(ctx, id)
}

func (s *courseService) Ratings(ctx context.Context, courseID int64) (*models.RatingSummary, error) {
	if err := checkID(courseID); err != nil {
		return nil, err
	}
	return s.client.GetCourseRatings(ctx, courseID)
}

func (s *courseService) InstructorRatings(ctx context.Context, courseID, instructorID int64) (*models.RatingSummary, error) {
	if err := checkIDs(courseID, instructorID); err != nil {
		return nil, err
	}
	return s.client.GetInstructorRatings(ctx, courseID, instructorID)
}

func (s *courseService) MyRatings(ctx context.Context, courseID int64) (*models.RatingSummary, error) {
	if err := checkID(courseID); err != nil {
		return nil, err
	}
	return s.client.GetMyRatings(ctx, courseID)
}

func (s *courseService) Rate(ctx context.Context, in models.RatingSubmission) error {
	if err := checkTarget(in.CourseID, in.CourseInstructorID); err != nil {
		return err
	}
	if len(in.Ratings) == 0 {
		return fmt.Errorf("%w: at least one rating is required", ErrValidation)
	}
	for _, r := range in.Ratings {
		if r.DimensionID <= 0 {
			return fmt.Errorf("%w: rating dimension is required", ErrValidation)
		}
		if r.Score < MinScore || r.Score > MaxScore {
			return fmt.Errorf("%w: score must be between %d and %d", ErrValidation, MinScore, MaxScore)
		}
	}
	return s.client.SubmitRatings(ctx, in)
}

func (s *courseService) Comments(ctx context.Context, courseID int64) ([]models.Comment, error) {
	if err := checkID(courseID); err != nil {
		return nil, err
	}
	return s.client.ListComments(ctx, courseID)
}

func (s *courseService) InstructorComments(ctx context.Context, courseID, instructorID int64) ([]models.Comment, error) {
	if err := checkIDs(courseID, instructorID); err != nil {
		return nil, err
	}
	return s.client.ListInstructorComments(ctx, courseID, instructorID)
}

func (s *courseService) Comment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if err := checkTarget(in.CourseID, in.CourseInstructorID); err != nil {
		return nil, err
	}
	return s.client.PostComment(ctx, in)
}

func (s *courseService) Like(ctx context.Context, commentID int64) (int, error) {
	if err := checkID(commentID); err != nil {
		return 0, err
	}
	return s.client.LikeComment(ctx, commentID)
}

func (s *courseService) Unlike(ctx context.Context, commentID int64) (int, error) {
	if err := checkID(commentID); err != nil {
		return 0, err
	}
	return s.client.UnlikeComment(ctx, commentID)
}

func (s *courseService) Follow(ctx context.Context, courseID int64) error {
	if err := checkID(courseID); err != nil {
		return err
	}
	return s.client.FollowCourse(ctx, courseID)
}

func (s *courseService) Unfollow(ctx context.Context, courseID int64) error {
	if err := checkID(courseID); err != nil {
		return err
	}
	return s.client.UnfollowCourse(ctx, courseID)
}

func (s *courseService) Followed(ctx context.Context) ([]models.Course, error) {
	return s.client.FollowedCourses(ctx)
}

func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid id %d", ErrValidation, id)
	}
	return nil
}

func checkIDs(ids ...int64) error {
	for _, id := range ids {
		if err := checkID(id); err != nil {
			return err
		}
	}
	return nil
}

// checkTarget requires exactly one of course and course-instructor.
func checkTarget(courseID, courseInstructorID *int64) error {
	if (courseID == nil) == (courseInstructorID == nil) {
		return fmt.Errorf("%w: provide either course_id or course_instructor_id, not both", ErrValidation)
	}
	if courseID != nil {
		return checkID(*courseID)
	}
	return checkID(*courseInstructorID)
}
