package media

import (
	"context"
	"errors"
	"io"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrInvalidObjectPath = errors.New("invalid object path")
)

type Repository interface {
	List(ctx context.Context) ([]File, error)
	GetByID(ctx context.Context, id string) (File, bool, error)
	Create(ctx context.Context, item File) error
	Delete(ctx context.Context, id string) error
}

// Object is a stored blob opened for reading.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Storage is a bucketed object store. Open reports ErrObjectNotFound and every
// method reports ErrInvalidObjectPath for a bucket or path it refuses.
type Storage interface {
	Put(ctx context.Context, bucket, objectPath, contentType string, body io.Reader) (int64, error)
	Open(ctx context.Context, bucket, objectPath string) (Object, error)
	Remove(ctx context.Context, bucket, objectPath string) error
	PublicURL(bucket, objectPath string) string
}

const (
	BucketMedia   = "media"
	BucketAvatars = "avatars"
)
