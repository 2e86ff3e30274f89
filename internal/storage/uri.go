package storage

import (
	"errors"
	"strings"
)

var (
	ErrEmptyURI   = errors.New("storage: BACKGROUND_IMAGE_URL is empty")
	ErrInvalidURI = errors.New("storage: invalid S3 URI, use s3://bucket/key or an S3 https URL")
)

// Location points at one object in a bucket.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// ParseURI accepts s3://bucket/key or a virtual-hosted style
// https://bucket.s3.<region>.amazonaws.com/key URL. The key is taken from
// the raw string as written: no unescaping, no re-escaping, no validation.
// Query and fragment are dropped.
func ParseURI(raw string) (Location, error) {
	if raw == "" {
		return Location{}, ErrEmptyURI
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Location{}, ErrInvalidURI
	}
	scheme = strings.ToLower(scheme)

	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	host, path, _ := strings.Cut(rest, "/")
	key := strings.TrimLeft(path, "/")

	switch {
	case scheme == "s3":
		return Location{Bucket: host, Key: key}, nil
	case (scheme == "http" || scheme == "https") && strings.Contains(host, ".s3"):
		bucket, _, _ := strings.Cut(host, ".")
		return Location{Bucket: bucket, Key: key}, nil
	}

	return Location{}, ErrInvalidURI
}
