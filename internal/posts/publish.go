package posts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores an object and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// KeyPrefix is the object key prefix for post images.
const KeyPrefix = "posts/"

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Publish uploads every inline data-URL image of p and returns a copy with
// the images replaced by their object URLs. Images that are already URLs are
// left alone. The first failed upload aborts and is returned.
func Publish(ctx context.Context, p Payload, up Uploader) (Payload, error) {
	out := p
	out.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	out.Images = make([]string, 0, len(p.Images))

	for i, img := range p.Images {
		if !strings.HasPrefix(img, "data:") {
			out.Images = append(out.Images, img)
			continue
		}

		mimeType, data, err := ParseDataURL(img)
		if err != nil {
			return Payload{}, fmt.Errorf("image %d: %w", i, err)
		}

		key := KeyPrefix + uuid.NewString() + extensions[mimeType]
		url, err := up.Upload(ctx, key, mimeType, bytes.NewReader(data))
		if err != nil {
			return Payload{}, fmt.Errorf("upload image %d: %w", i, err)
		}
		out.Images = append(out.Images, url)
	}
	return out, nil
}
