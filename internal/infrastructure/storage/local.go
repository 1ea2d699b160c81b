package storage

import (
	"context"
	"io"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const copyBufferSize = 32 * 1024

type LocalConfig struct {
	RootDir       string
	PublicBaseURL string
}

// LocalStorage keeps each bucket as a directory under RootDir.
type LocalStorage struct {
	root          string
	publicBaseURL string
	logger        *logging.Logger
}

func NewLocalStorage(cfg LocalConfig, logger *logging.Logger) (*LocalStorage, error) {
	root := strings.TrimSpace(cfg.RootDir)
	if root == "" {
		return nil, crerr.New("storage root dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create storage root %q", root)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LocalStorage{
		root:          root,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
		logger:        logger,
	}, nil
}

func (s *LocalStorage) Put(ctx context.Context, bucket, objectPath, contentType string, body io.Reader) (int64, error) {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, crerr.Wrap(err, "create object dir")
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return 0, crerr.Wrap(err, "create temp object")
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if cap(buf.B) < copyBufferSize {
		buf.B = make([]byte, copyBufferSize)
	}
	buf.B = buf.B[:copyBufferSize]

	written, err := io.CopyBuffer(tmp, contextReader{ctx: ctx, r: body}, buf.B)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, crerr.Wrap(err, "write object")
	}
	if err := os.Rename(tmpName, target); err != nil {
		return 0, crerr.Wrap(err, "commit object")
	}

	s.logger.DebugContext(ctx, "object stored", "bucket", bucket, "path", objectPath, "size", written, "content_type", contentType)
	return written, nil
}

func (s *LocalStorage) Open(_ context.Context, bucket, objectPath string) (media.Object, error) {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return media.Object{}, err
	}

	file, err := os.Open(target)
	if err != nil {
		if crerr.Is(err, fs.ErrNotExist) {
			return media.Object{}, crerr.Wrapf(media.ErrObjectNotFound, "object %s/%s", bucket, objectPath)
		}
		return media.Object{}, crerr.Wrap(err, "open object")
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return media.Object{}, crerr.Wrap(err, "stat object")
	}
	if info.IsDir() {
		_ = file.Close()
		return media.Object{}, crerr.Wrapf(media.ErrObjectNotFound, "object %s/%s", bucket, objectPath)
	}

	contentType := mime.TypeByExtension(filepath.Ext(target))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return media.Object{
		Body:        file,
		Size:        info.Size(),
		ContentType: contentType,
	}, nil
}

func (s *LocalStorage) Remove(ctx context.Context, bucket, objectPath string) error {
	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !crerr.Is(err, fs.ErrNotExist) {
		return crerr.Wrap(err, "remove object")
	}
	s.logger.DebugContext(ctx, "object removed", "bucket", bucket, "path", objectPath)
	return nil
}

// PublicURL is served by GET /v1/files/{bucket}/{path...}.
func (s *LocalStorage) PublicURL(bucket, objectPath string) string {
	segments := strings.Split(strings.Trim(objectPath, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return s.publicBaseURL + "/v1/files/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

func (s *LocalStorage) resolve(bucket, objectPath string) (string, error) {
	bucket = strings.TrimSpace(bucket)
	objectPath = strings.TrimSpace(objectPath)
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", crerr.Wrapf(media.ErrInvalidObjectPath, "bucket %q", bucket)
	}
	cleaned := path.Clean("/" + objectPath)
	if objectPath == "" || cleaned == "/" || strings.Contains(objectPath, "..") {
		return "", crerr.Wrapf(media.ErrInvalidObjectPath, "path %q", objectPath)
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
