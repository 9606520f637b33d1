// Package transcode converts uploaded images to WebP before storage.
// Animated formats are kept verbatim since re-encoding would flatten them.
package transcode

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// DefaultQuality matches the site's historical WebP quality setting.
const DefaultQuality = 80

var (
	allowedExts     = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
	passthroughExts = map[string]bool{".gif": true}
)

// Allowed reports whether the original file name carries a supported image
// extension.
func Allowed(name string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(name))]
}

// Result is one converted (or passed-through) upload.
type Result struct {
	FileName string
	Data     []byte
}

type Transcoder struct {
	Quality float32

	// now is swappable in tests; stored names are timestamp-prefixed.
	now func() time.Time
}

func NewTranscoder() *Transcoder {
	return &Transcoder{Quality: DefaultQuality, now: time.Now}
}

// Convert re-encodes the upload to WebP at the configured quality, naming it
// <unix-ms>-<base>.webp. GIFs skip conversion and keep their original name
// behind the timestamp prefix.
func (t *Transcoder) Convert(originalName string, data []byte) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	stamp := t.now().UnixMilli()

	if passthroughExts[ext] {
		return &Result{
			FileName: fmt.Sprintf("%d-%s", stamp, originalName),
			Data:     data,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", originalName)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: t.Quality}); err != nil {
		return nil, errors.Wrapf(err, "encode %s to webp", originalName)
	}

	base := strings.SplitN(originalName, ".", 2)[0]
	return &Result{
		FileName: fmt.Sprintf("%d-%s.webp", stamp, base),
		Data:     buf.Bytes(),
	}, nil
}
