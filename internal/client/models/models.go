// Package models defines the data exchanged with the course-review API.
package models

// User is an account as returned by the auth and profile endpoints.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// AuthResult is the body of a successful login or register call. Token is
// empty when the server accepted a registration without signing the user in.
type AuthResult struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}

type Course struct {
	ID          int64  `json:"id"`
	CourseCode  string `json:"course_code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type Instructor struct {
	CourseInstructorID int64  `json:"course_instructor_id"`
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	ProfileURL         string `json:"profile_url"`
	CreatedAt          string `json:"created_at"`
}

// InstructorDetail is an instructor with the courses they teach.
type InstructorDetail struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	ProfileURL string   `json:"profile_url"`
	CreatedAt  string   `json:"created_at"`
	Courses    []Course `json:"courses"`
}

// CourseDetail is a course together with the instructors teaching it.
type CourseDetail struct {
	Course
	Unit        *float64     `json:"unit"`
	Instructors []Instructor `json:"instructors"`
}

// DimensionScore is one rating dimension with an aggregate or personal
// score. Score is nil when nobody (or not the caller) rated it yet.
type DimensionScore struct {
	DimensionID   int64    `json:"dimension_id"`
	DimensionName string   `json:"dimension_name"`
	AverageScore  *float64 `json:"average_score,omitempty"`
	Score         *int     `json:"score,omitempty"`
}

type RatingSummary struct {
	CourseID           *int64           `json:"course_id,omitempty"`
	CourseInstructorID *int64           `json:"course_instructor_id,omitempty"`
	Ratings            []DimensionScore `json:"ratings"`
}

type RatingInput struct {
	DimensionID int64 `json:"rating_dimension_id"`
	Score       int   `json:"score"`
}

// RatingSubmission targets either a course or a course-instructor pair.
type RatingSubmission struct {
	CourseID           *int64        `json:"course_id"`
	CourseInstructorID *int64        `json:"course_instructor_id"`
	Ratings            []RatingInput `json:"ratings"`
}

type Comment struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	CourseID           *int64    `json:"course_id"`
	CourseInstructorID *int64    `json:"course_instructor_id"`
	ParentCommentID    *int64    `json:"parent_comment_id"`
	Content            string    `json:"content"`
	CreatedAt          string    `json:"created_at"`
	SubComments        []Comment `json:"sub_comments,omitempty"`
}

type CommentInput struct {
	CourseID           *int64 `json:"course_id"`
	CourseInstructorID *int64 `json:"course_instructor_id"`
	ParentCommentID    *int64 `json:"parent_comment_id,omitempty"`
	Content            string `json:"content"`
}

// LikeCount is the body of a like or unlike call.
type LikeCount struct {
	LikeCount int `json:"like_count"`
}

// MessageResponse is the generic {"message": "..."} body the API uses for
// errors and for acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}
