package api

import (
	"context"

	"github.com/coursecomment/coursecomment/internal/client/models"
)

// Base URLs of the API per build environment.
const (
	ProductionBaseURL  = "https://courseComment.hkust-gz.Axfff.com/v1/api"
	DevelopmentBaseURL = "http://localhost:3000/v1/api"
)

// BaseURLFor returns the API base URL for a build environment.
func BaseURLFor(production bool) string {
	if production {
		return ProductionBaseURL
	}
	return DevelopmentBaseURL
}

type Client interface {
	Login(ctx context.Context, email, passwordHash string) (*models.AuthResult, error)
	Register(ctx context.Context, email, passwordHash, name string) (*models.AuthResult, error)
	Me(ctx context.Context) (*models.User, error)

	ListCourses(ctx context.Context) ([]models.Course, error)
	SearchCourses(ctx context.Context, query string) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.CourseDetail, error)
	FollowCourse(ctx context.Context, id int64) error
	UnfollowCourse(ctx context.Context, id int64) error
	FollowedCourses(ctx context.Context) ([]models.Course, error)

	GetInstructor(ctx context.Context, id int64) (*models.InstructorDetail, error)

	GetCourseRatings(ctx context.Context, courseID int64) (*models.RatingSummary, error)
	GetInstructorRatings(ctx context.Context, courseID, instructorID int64) (*models.RatingSummary, error)
	GetMyRatings(ctx context.Context, courseID int64) (*models.RatingSummary, error)
	SubmitRatings(ctx context.Context, in models.RatingSubmission) error

	ListComments(ctx context.Context, courseID int64) ([]models.Comment, error)
	ListInstructorComments(ctx context.Context, courseID, instructorID int64) ([]models.Comment, error)
	PostComment(ctx context.Context, in models.CommentInput) (*models.Comment, error)
	LikeComment(ctx context.Context, commentID int64) (int, error)
	UnlikeComment(ctx context.Context, commentID int64) (int, error)
}
