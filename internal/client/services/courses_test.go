package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coursecomment/coursecomment/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestCourseService_Delegates(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		CoursesRet: []models.Course{{ID: 1, CourseCode: "COMP1001"}},
		CourseRet:  &models.CourseDetail{Course: models.Course{ID: 1}},
	}
	svc := NewCourseService(fc)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.Search(ctx, "  comp ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "comp", fc.LastQuery)

	detail, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ID)

	require.NoError(t, svc.Follow(ctx, 9))
	assert.Equal(t, int64(9), fc.LastID)
	require.NoError(t, svc.Unfollow(ctx, 10))
	assert.Equal(t, int64(10), fc.LastID)
}

func TestCourseService_InvalidIDs(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	svc := NewCourseService(fc)

	_, err := svc.Get(ctx, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Ratings(ctx, -1)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Comments(ctx, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Search(ctx, "   ")
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, svc.Follow(ctx, 0), ErrValidation)
	_, err = svc.Instructor(ctx, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.InstructorRatings(ctx, 2, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.InstructorComments(ctx, 0, 5)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Like(ctx, -4)
	require.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, fc.Calls)
}

func TestCourseService_Rate(t *testing.T) {
	tests := []struct {
		name    string
		in      models.RatingSubmission
		wantErr bool
	}{
		{
			name: "course ok",
			in:   models.RatingSubmission{CourseID: ptr(1), Ratings: []models.RatingInput{{DimensionID: 1, Score: 5}}},
		},
		{
			name: "instructor ok",
			in:   models.RatingSubmission{CourseInstructorID: ptr(3), Ratings: []models.RatingInput{{DimensionID: 2, Score: 1}}},
		},
		{
			name:    "no target",
			in:      models.RatingSubmission{Ratings: []models.RatingInput{{DimensionID: 1, Score: 3}}},
			wantErr: true,
		},
		{
			name:    "both targets",
			in:      models.RatingSubmission{CourseID: ptr(1), CourseInstructorID: ptr(2), Ratings: []models.RatingInput{{DimensionID: 1, Score: 3}}},
			wantErr: true,
		},
		{
			name:    "no ratings",
			in:      models.RatingSubmission{CourseID: ptr(1)},
			wantErr: true,
		},
		{
			name:    "score too high",
			in:      models.RatingSubmission{CourseID: ptr(1), Ratings: []models.RatingInput{{DimensionID: 1, Score: 6}}},
			wantErr: true,
		},
		{
			name:    "score too low",
			in:      models.RatingSubmission{CourseID: ptr(1), Ratings: []models.RatingInput{{DimensionID: 1, Score: 0}}},
			wantErr: true,
		},
		{
			name:    "missing dimension",
			in:      models.RatingSubmission{CourseID: ptr(1), Ratings: []models.RatingInput{{Score: 3}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			err := NewCourseService(fc).Rate(context.Background(), tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, fc.LastRatings)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, fc.LastRatings)
		})
	}
}

func TestCourseService_Comment(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{CommentRet: &models.Comment{ID: 5, Content: "nice"}}
	svc := NewCourseService(fc)

	c, err := svc.Comment(ctx, models.CommentInput{CourseID: ptr(1), Content: "  nice  "})
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.ID)
	assert.Equal(t, "nice", fc.LastComment.Content)

	_, err = svc.Comment(ctx, models.CommentInput{CourseID: ptr(1), Content: " \t "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Comment(ctx, models.CommentInput{Content: "x"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCourseService_ClientErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	fc := &fakeClient{Err: boom}
	svc := NewCourseService(fc)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, boom)
	_, err = svc.Ratings(context.Background(), 1)
	require.ErrorIs(t, err, boom)
}

func TestCourseService_InstructorScope(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		InstRet:     &models.InstructorDetail{ID: 5, Name: "Dr. Li"},
		RatingsRet:  &models.RatingSummary{CourseInstructorID: ptr(11)},
		CommentsRet: []models.Comment{{ID: 3}},
	}
	svc := NewCourseService(fc)

	in, err := svc.Instructor(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Li", in.Name)

	rs, err := svc.InstructorRatings(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(11), *rs.CourseInstructorID)
	assert.Equal(t, int64(2), fc.LastID)
	assert.Equal(t, int64(5), fc.LastInstructorID)

	cs, err := svc.InstructorComments(ctx, 4, 6)
	require.NoError(t, err)
	assert.Len(t, cs, 1)
	assert.Equal(t, int64(4), fc.LastID)
	assert.Equal(t, int64(6), fc.LastInstructorID)
}

func TestCourseService_Likes(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{LikesRet: 2}
	svc := NewCourseService(fc)

	n, err := svc.Like(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(8), fc.LastID)

	fc.Err = errors.New("Like not found.")
	_, err = svc.Unlike(ctx, 8)
	require.EqualError(t, err, "Like not found.")
}
