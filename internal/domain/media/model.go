package media

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// MaxFileSize caps a single upload at 100 MiB.
const MaxFileSize int64 = 100 * 1024 * 1024

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// ClassifyMIME maps a content type to a media kind; only images and videos are accepted.
func ClassifyMIME(mimeType string) (FileType, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case strings.HasPrefix(mt, "image/"):
		return FileTypeImage, nil
	case strings.HasPrefix(mt, "video/"):
		return FileTypeVideo, nil
	default:
		return "", fmt.Errorf("unsupported media type %q: only images and videos are allowed", mimeType)
	}
}

func ParseFileType(v string) (FileType, bool, error) {
	switch FileType(strings.ToLower(strings.TrimSpace(v))) {
	case "", "all":
		return "", false, nil
	case FileTypeImage:
		return FileTypeImage, true, nil
	case FileTypeVideo:
		return FileTypeVideo, true, nil
	default:
		return "", false, fmt.Errorf("invalid media type filter: %s", v)
	}
}

// Extension picks the object extension from the original name, falling back to the MIME subtype.
func Extension(fileName, mimeType string) string {
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), "."); ext != "" {
		return ext
	}
	_, sub, ok := strings.Cut(strings.ToLower(mimeType), "/")
	if !ok || sub == "" {
		return "bin"
	}
	if i := strings.IndexAny(sub, ";+"); i >= 0 {
		sub = sub[:i]
	}
	return sub
}

// File is an uploaded media asset.
type File struct {
	ID        string
	UserID    string
	FileURL   string
	FilePath  string
	FileName  string
	FileType  FileType
	FileSize  int64
	MimeType  string
	Caption   string
	CreatedAt time.Time
}
