package logo

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/navigator-back/internal/config"
)

var (
	ErrNotDataURL      = errors.New("imageData is not a base64 data URL")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds the size limit")
)

// maxImageBytes caps decoded uploads at 2 MiB.
const maxImageBytes = 2 << 20

var extensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// Store writes uploaded site logos to disk and hands back the public
// path they are served under.
type Store struct {
	dir string
}

func NewStore(cfg *config.Config) (*Store, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	return &Store{dir: cfg.UploadDir}, nil
}

// Dir is the filesystem directory uploads live in, for static serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save decodes a data-URL upload ("data:image/png;base64,....") and
// writes it under a fresh name. fileName is accepted for API
// compatibility with the old upload proxy but does not influence the
// stored name.
func (s *Store) Save(imageData, fileName string) (string, error) {
	mime, payload, err := splitDataURL(imageData)
	if err != nil {
		return "", err
	}

	ext, ok := extensions[mime]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedType, "%s", mime)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errors.Wrap(err, "decode image payload")
	}
	if len(raw) > maxImageBytes {
		return "", ErrTooLarge
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", errors.Wrap(err, "write image")
	}

	return "/uploads/" + name, nil
}

func splitDataURL(s string) (mime, payload string, err error) {
	if !strings.HasPrefix(s, "data:") {
		return "", "", ErrNotDataURL
	}
	rest := strings.TrimPrefix(s, "data:")
	head, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(head, ";base64") {
		return "", "", ErrNotDataURL
	}
	return strings.TrimSuffix(head, ";base64"), payload, nil
}
