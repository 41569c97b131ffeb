// Package posts builds course posts: a title, free text, hashtag-style tags
// and inline images.
package posts

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
	ErrTagIndex         = errors.New("tag index out of range")
)

// MaxImageSize is the largest accepted image, in bytes.
const MaxImageSize = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// Image is an attached picture kept as a data URL until published.
type Image struct {
	Name     string
	MimeType string
	URL      string
}

// Payload is the submitted post. Tags and Images are never nil so an empty
// post still serialises both keys as [].
type Payload struct {
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// Composer collects a post while it is being edited. It is safe for
// concurrent use.
type Composer struct {
	mu      sync.Mutex
	title   string
	content string
	tags    []string
	images  []Image
}

func NewComposer() *Composer {
	return &Composer{}
}

func (c *Composer) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = title
}

func (c *Composer) SetContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
}

// AddTag appends a tag. A leading "#" and surrounding spaces are dropped;
// blank tags are ignored. It reports whether a tag was added.
func (c *Composer) AddTag(v string) bool {
	v = normalizeTag(v)
	if v == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = append(c.tags, v)
	return true
}

// EditTag replaces tag i. A blank value keeps the old tag.
func (c *Composer) EditTag(i int, v string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.tags) {
		return fmt.Errorf("%w: %d", ErrTagIndex, i)
	}
	if v = normalizeTag(v); v != "" {
		c.tags[i] = v
	}
	return nil
}

func (c *Composer) Tags() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tags)
}

func (c *Composer) Images() []Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.images)
}

// AddImage attaches a file. Files whose type is not image/* are skipped and
// AddImage reports false with no error. Other image types and files above
// MaxImageSize are rejected.
func (c *Composer) AddImage(name, mimeType string, data []byte) (bool, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if !strings.HasPrefix(mimeType, "image/") {
		return false, nil
	}
	if !slices.Contains(allowedImageTypes, mimeType) {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}
	if len(data) > MaxImageSize {
		return false, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrImageTooLarge, name, len(data), MaxImageSize)
	}

	img := Image{Name: name, MimeType: mimeType, URL: DataURL(mimeType, data)}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = append(c.images, img)
	return true, nil
}

// Submit returns the post as it stands.
func (c *Composer) Submit() Payload {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := Payload{
		Title:   c.title,
		Content: c.content,
		Tags:    make([]string, 0, len(c.tags)),
		Images:  make([]string, 0, len(c.images)),
	}
	p.Tags = append(p.Tags, c.tags...)
	for _, img := range c.images {
		p.Images = append(p.Images, img.URL)
	}
	return p
}

// Reset empties the composer.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title, c.content = "", ""
	c.tags, c.images = nil, nil
}

func normalizeTag(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "#")
	return strings.TrimSpace(v)
}

// DataURL encodes data as a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL splits a base64 data URL into its type and decoded bytes.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data URL")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mimeType, data, nil
}
