package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/coursecomment/coursecomment/internal/client/models"
	"github.com/coursecomment/coursecomment/internal/client/services"
)

func (a *App) Courses(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	cs, err := a.courseService.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderCourses(cs))
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	cs, err := a.courseService.Search(ctx, query)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderCourses(cs))
	return nil
}

// Course opens the course details page.
func (a *App) Course(ctx context.Context, id string) error {
	return a.Go(ctx, "/courses/"+id)
}

func (a *App) showCourse(ctx context.Context, id string) error {
	courseID, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	c, err := a.courseService.Get(ctx, courseID)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderCourseDetail(c))
	return nil
}

func (a *App) Follow(ctx context.Context, id string) error {
	courseID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.courseService.Follow(ctx, courseID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Following course %d\n", courseID)
	return nil
}

func (a *App) Unfollow(ctx context.Context, id string) error {
	courseID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.courseService.Unfollow(ctx, courseID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unfollowed course %d\n", courseID)
	return nil
}

func (a *App) Followed(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	cs, err := a.courseService.Followed(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderCourses(cs))
	return nil
}

// Ratings shows the average scores of a course, or of one instructor's
// teaching of it when instructor is set.
func (a *App) Ratings(ctx context.Context, id, instructor string) error {
	courseID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	var rs *models.RatingSummary
	if instructor == "" {
		rs, err = a.courseService.Ratings(ctx, courseID)
	} else {
		var instructorID int64
		if instructorID, err = parseID(instructor); err != nil {
			return err
		}
		rs, err = a.courseService.InstructorRatings(ctx, courseID, instructorID)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderRatings(rs))
	return nil
}

// Rate asks for a 1-5 score per rating dimension of the course. Blank
// answers skip the dimension.
func (a *App) Rate(ctx context.Context, id string) error {
	courseID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	summary, err := a.courseService.Ratings(ctx, courseID)
	if err != nil {
		return err
	}
	if len(summary.Ratings) == 0 {
		fmt.Fprintln(a.out, "This course has no rating dimensions.")
		return nil
	}

	sub := models.RatingSubmission{CourseID: &courseID}
	for _, dim := range summary.Ratings {
		prompt := fmt.Sprintf("%s (%d-%d, blank to skip)", dim.DimensionName, services.MinScore, services.MaxScore)
		answer, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" {
			continue
		}
		score, err := strconv.Atoi(answer)
		if err != nil {
			return fmt.Errorf("%w: score %q is not a number", services.ErrValidation, answer)
		}
		sub.Ratings = append(sub.Ratings, models.RatingInput{DimensionID: dim.DimensionID, Score: score})
	}

	if err := a.courseService.Rate(ctx, sub); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Ratings submitted")
	return nil
}

// Comments lists the comment threads of a course, or those left on one
// instructor's teaching of it when instructor is set.
func (a *App) Comments(ctx context.Context, id, instructor string) error {
	courseID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	var cs []models.Comment
	if instructor == "" {
		cs, err = a.courseService.Comments(ctx, courseID)
	} else {
		var instructorID int64
		if instructorID, err = parseID(instructor); err != nil {
			return err
		}
		cs, err = a.courseService.InstructorComments(ctx, courseID, instructorID)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderComments(cs))
	return nil
}

// Comment posts a comment on a course, or a reply when parent is set.
func (a *App) Comment(ctx context.Context, id string, parent string) error {
	courseID, err := parseID(id)
	if err != nil {
		return err
	}
	in := models.CommentInput{CourseID: &courseID}
	if parent != "" {
		parentID, err := parseID(parent)
		if err != nil {
			return err
		}
		in.ParentCommentID = &parentID
	}

	content, err := GetMultiline(a.reader, "Enter comment", a.out)
	if err != nil {
		return err
	}
	in.Content = content

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	c, err := a.courseService.Comment(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %d posted\n", c.ID)
	return nil
}

func (a *App) Instructor(ctx context.Context, id string) error {
	instructorID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	in, err := a.courseService.Instructor(ctx, instructorID)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, renderInstructor(in))
	return nil
}

func (a *App) Like(ctx context.Context, id string) error {
	commentID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	n, err := a.courseService.Like(ctx, commentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Liked comment %d (%d likes)\n", commentID, n)
	return nil
}

func (a *App) Unlike(ctx context.Context, id string) error {
	commentID, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	n, err := a.courseService.Unlike(ctx, commentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unliked comment %d (%d likes)\n", commentID, n)
	return nil
}
