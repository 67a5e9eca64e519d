package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"
)

// blob wraps the GetObject response body, optionally throttled.
type blob struct {
	io.ReadCloser
	size    int64
	limiter *rate.Limiter
}

func (b *blob) Size() int64 { return b.size }

func (b *blob) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if n > 0 && b.limiter != nil {
		if waitErr := b.limiter.WaitN(context.Background(), n); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}

// writableBlob streams writes into the S3 upload manager through an
// io.Pipe, the same pattern vecgo's s3Blob upload path uses so Close
// can report the upload's final error.
type writableBlob struct {
	pw      *io.PipeWriter
	done    chan error
	limiter *rate.Limiter
}

func newWritableBlob(ctx context.Context, uploader *manager.Uploader, bucket, key string, limiter *rate.Limiter) *writableBlob {
	pr, pw := io.Pipe()
	wb := &writableBlob{pw: pw, done: make(chan error, 1), limiter: limiter}

	go func() {
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   pr,
		})
		_ = pr.CloseWithError(err)
		wb.done <- err
	}()

	return wb
}

func (w *writableBlob) Write(p []byte) (int, error) {
	if w.limiter != nil {
		if err := w.limiter.WaitN(context.Background(), len(p)); err != nil {
			return 0, err
		}
	}
	return w.pw.Write(p)
}

func (w *writableBlob) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
