// Package s3 provides an S3-backed blobstore.Store for persisting
// SuccinctBitVector snapshots.
package s3

import (
	"context"
	"errors"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/time/rate"

	"github.com/succinctgo/rank9sel/blobstore"
)

// Store implements blobstore.Store for S3.
type Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	limiter *rate.Limiter // nil means unthrottled
}

// NewStore creates an S3-backed Store. rootPrefix is prepended to
// every key (e.g. "rank9sel-snapshots/").
func NewStore(client *s3.Client, bucket, rootPrefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: rootPrefix}
}

// WithRateLimit throttles uploads and downloads to at most
// bytesPerSecond, the way vecgo's resource controller throttles its
// own storage I/O.
func (s *Store) WithRateLimit(bytesPerSecond int) *Store {
	s.limiter = rate.NewLimiter(rate.Limit(bytesPerSecond), bytesPerSecond)
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	size := int64(0)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return &blob{ReadCloser: out.Body, size: size, limiter: s.limiter}, nil
}

func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	return newWritableBlob(ctx, manager.NewUploader(s.client), s.bucket, s.key(name), s.limiter), nil
}
