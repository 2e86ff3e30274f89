package background

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dchest/uniuri"
	"github.com/dustin/go-humanize"
	"github.com/stelofinance/homepage/internal/storage"
	"golang.org/x/sync/singleflight"
)

// ClientFunc creates the storage client lazily, so a missing URL never
// touches credentials.
type ClientFunc func(ctx context.Context) (storage.ObjectGetter, error)

// Fetcher downloads the background image into a single local file.
type Fetcher struct {
	logger    *slog.Logger
	url       string
	dest      string
	newClient ClientFunc

	group singleflight.Group
}

func New(logger *slog.Logger, url, dest string, newClient ClientFunc) *Fetcher {
	return &Fetcher{
		logger:    logger,
		url:       url,
		dest:      dest,
		newClient: newClient,
	}
}

// Dest is the path of the cached image.
func (f *Fetcher) Dest() string {
	return f.dest
}

// Present reports whether the cached image exists and is non-empty.
func (f *Fetcher) Present() bool {
	info, err := os.Stat(f.dest)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// Ensure fetches the image unless a non-empty copy is already cached. The
// returned bool reports whether a fetch was attempted.
func (f *Fetcher) Ensure(ctx context.Context) (bool, error) {
	if f.Present() {
		return false, nil
	}
	return true, f.Fetch(ctx)
}

// Fetch downloads the image over the cached copy. Concurrent calls share a
// single download, which runs to completion even if the caller that started
// it goes away. A failed fetch leaves the previous file untouched.
func (f *Fetcher) Fetch(ctx context.Context) error {
	_, err, shared := f.group.Do(f.dest, func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		err := f.fetch(ctx)
		if err != nil && KindOf(err) != KindEmptyConfig {
			f.logger.LogAttrs(
				ctx,
				slog.LevelError,
				"failed to download background image",
				slog.String("kind", KindOf(err).String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	})
	if shared {
		f.logger.LogAttrs(ctx, slog.LevelDebug, "joined in-flight background download")
	}
	return err
}

func (f *Fetcher) fetch(ctx context.Context) error {
	if f.url == "" {
		f.logger.LogAttrs(ctx, slog.LevelWarn, "no BACKGROUND_IMAGE_URL provided")
		return &Error{Kind: KindEmptyConfig, Err: ErrNoBackgroundURL}
	}

	f.logger.LogAttrs(ctx, slog.LevelInfo, "configured background image", slog.String("url", f.url))
	loc, err := storage.ParseURI(f.url)
	if err != nil {
		return &Error{Kind: KindInvalidURI, Err: err}
	}

	dir := filepath.Dir(f.dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}

	client, err := f.newClient(ctx)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}

	f.logger.LogAttrs(
		ctx,
		slog.LevelInfo,
		"downloading background image",
		slog.String("source", loc.String()),
		slog.String("dest", f.dest),
	)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer out.Body.Close()

	// Write next to the destination so the rename stays on one filesystem
	tmp := filepath.Join(dir, "."+filepath.Base(f.dest)+"."+uniuri.New()+".tmp")
	n, err := writeFile(tmp, out.Body)
	if err != nil {
		os.Remove(tmp)
		return &Error{Kind: KindTransport, Err: err}
	}
	if n == 0 {
		os.Remove(tmp)
		return &Error{Kind: KindEmptyDownload, Err: ErrEmptyDownload}
	}
	if err := os.Rename(tmp, f.dest); err != nil {
		os.Remove(tmp)
		return &Error{Kind: KindTransport, Err: err}
	}

	f.logger.LogAttrs(
		ctx,
		slog.LevelInfo,
		"background image downloaded",
		slog.String("size", humanize.Bytes(uint64(n))),
	)
	return nil
}

func writeFile(path string, r io.Reader) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(file, r)
	return n, errors.Join(err, file.Close())
}
