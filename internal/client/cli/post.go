package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/coursecomment/coursecomment/internal/posts"
)

// Post walks through the post form: title, content, tags, optional tag
// edits and image files. The resulting payload is printed as JSON; with an
// image bucket configured the images are uploaded first.
func (a *App) Post(ctx context.Context) error {
	c := a.composer
	c.Reset()

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	c.SetTitle(title)

	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	c.SetContent(content)

	tags, err := GetLines(a.reader, "Tags, one per line", a.out)
	if err != nil {
		return err
	}
	for _, t := range tags {
		c.AddTag(t)
	}
	if err := a.editTags(); err != nil {
		return err
	}

	files, err := GetLines(a.reader, "Image files, one path per line", a.out)
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := a.attachImage(path); err != nil {
			fmt.Fprintln(a.out, describeError(err))
		}
	}

	payload := c.Submit()
	if a.uploader != nil && len(payload.Images) > 0 {
		ctx, cancel := a.commandContext(ctx)
		defer cancel()
		if payload, err = posts.Publish(ctx, payload, a.uploader); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(out))
	fmt.Fprintf(a.out, "Post submitted with %d images!\n", len(payload.Images))
	return nil
}

// editTags lets the user rename tags by number until an empty answer.
func (a *App) editTags() error {
	for {
		tags := a.composer.Tags()
		if len(tags) == 0 {
			return nil
		}
		fmt.Fprint(a.out, renderTags(tags))

		answer, err := getSimpleText(a.reader, "Tag number to edit (blank to continue)", a.out)
		if err != nil || answer == "" {
			return err
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(a.out, "Not a number:", answer)
			continue
		}
		value, err := getSimpleText(a.reader, "New value", a.out)
		if err != nil {
			return err
		}
		if err := a.composer.EditTag(n-1, value); err != nil {
			fmt.Fprintln(a.out, describeError(err))
		}
	}
}

func (a *App) attachImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ok, err := a.composer.AddImage(filepath.Base(path), detectType(path, data), data)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "Skipped %s: not an image\n", path)
	}
	return nil
}

// detectType guesses the media type from the extension, then the content.
func detectType(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		mt, _, err := mime.ParseMediaType(t)
		if err == nil {
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}
