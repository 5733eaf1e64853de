package lena

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// maxPhotoSize bounds a single embedded photo.
const maxPhotoSize = 10 << 20

// DataURL reads an image from r and returns it as a base64 data URL. The
// media type is detected from the content; anything but an image is rejected.
func DataURL(r io.Reader) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, maxPhotoSize+1))
	if err != nil {
		return "", fmt.Errorf("cannot read photo: %w", err)
	}
	if len(content) > maxPhotoSize {
		return "", fmt.Errorf("photo is larger than %d bytes", maxPhotoSize)
	}
	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("not an image: detected %q", mtype.String())
	}
	return "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(content), nil
}

// LoadPhotos reads image files and returns them as data URLs, in order.
func LoadPhotos(filenames ...string) ([]string, error) {
	urls := make([]string, 0, len(filenames))
	for _, filename := range filenames {
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot open photo %q: %w", filename, err)
		}
		url, err := DataURL(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("photo %q: %w", filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
