package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coursecomment/coursecomment/internal/client/models"
	"github.com/coursecomment/coursecomment/internal/reviews"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hiddenStyle = lipgloss.NewStyle().Faint(true)
	cardStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func renderUser(u *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(u.Name), labelStyle.Render("<"+u.Email+">"))
	if u.CreatedAt != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("member since"), u.CreatedAt)
	}
	return b.String()
}

func renderCourses(cs []models.Course) string {
	if len(cs) == 0 {
		return "No courses.\n"
	}
	var b strings.Builder
	for _, c := range cs {
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("#%d", c.ID)),
			titleStyle.Render(c.CourseCode),
			c.Name)
	}
	return b.String()
}

func renderCourseDetail(c *models.CourseDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(c.CourseCode), c.Name)
	if c.Unit != nil {
		fmt.Fprintf(&b, "%s %g\n", labelStyle.Render("units"), *c.Unit)
	}
	if c.Description != "" {
		b.WriteString(c.Description + "\n")
	}
	if len(c.Instructors) > 0 {
		b.WriteString(labelStyle.Render("instructors") + "\n")
		for _, in := range c.Instructors {
			fmt.Fprintf(&b, "  %s %s\n", in.Name,
				labelStyle.Render(fmt.Sprintf("(instructor #%d, section #%d)", in.ID, in.CourseInstructorID)))
		}
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func renderInstructor(in *models.InstructorDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(in.Name), labelStyle.Render(fmt.Sprintf("#%d", in.ID)))
	if in.ProfileURL != "" {
		b.WriteString(in.ProfileURL + "\n")
	}
	if len(in.Courses) > 0 {
		b.WriteString(labelStyle.Render("teaches") + "\n")
		for _, c := range in.Courses {
			fmt.Fprintf(&b, "  %s %s %s\n", labelStyle.Render(fmt.Sprintf("#%d", c.ID)), c.CourseCode, c.Name)
		}
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func renderRatings(rs *models.RatingSummary) string {
	if rs == nil || len(rs.Ratings) == 0 {
		return "No ratings yet.\n"
	}
	var b strings.Builder
	for _, d := range rs.Ratings {
		score := "-"
		switch {
		case d.AverageScore != nil:
			score = fmt.Sprintf("%.2f", *d.AverageScore)
		case d.Score != nil:
			score = fmt.Sprintf("%d", *d.Score)
		}
		fmt.Fprintf(&b, "%-24s %s\n", d.DimensionName, scoreStyle.Render(score))
	}
	return b.String()
}

func renderComments(cs []models.Comment) string {
	if len(cs) == 0 {
		return "No comments yet.\n"
	}
	var b strings.Builder
	writeComments(&b, cs, 0)
	return b.String()
}

func writeComments(b *strings.Builder, cs []models.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range cs {
		fmt.Fprintf(b, "%s%s %s\n", indent,
			labelStyle.Render(fmt.Sprintf("#%d user %d %s", c.ID, c.UserID, c.CreatedAt)),
			c.Content)
		writeComments(b, c.SubComments, depth+1)
	}
}

func renderReviews(rs []reviews.Review) string {
	if len(rs) == 0 {
		return "No reviews.\n"
	}
	var b strings.Builder
	shown := 0
	for _, r := range rs {
		if !r.Visible {
			continue
		}
		shown++
		head := fmt.Sprintf("%s | %s  %s", r.Semester, r.Instructor,
			scoreStyle.Render(fmt.Sprintf("%.1f", reviews.AverageRating(r))))
		body := head
		if r.Title != "" {
			body += "\n" + titleStyle.Render(r.Title)
		}
		if r.Body != "" {
			body += "\n" + r.Body
		}
		b.WriteString(cardStyle.Render(body) + "\n")
	}
	if hidden := len(rs) - shown; hidden > 0 {
		b.WriteString(hiddenStyle.Render(fmt.Sprintf("%d review(s) hidden by filters", hidden)) + "\n")
	}
	return b.String()
}

func renderTags(tags []string) string {
	var b strings.Builder
	for i, t := range tags {
		fmt.Fprintf(&b, "%s # %s\n", labelStyle.Render(fmt.Sprintf("%d.", i+1)), t)
	}
	return b.String()
}
