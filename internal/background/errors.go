package background

import "errors"

// Kind tells why a fetch did not produce a background image.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyConfig
	KindInvalidURI
	KindTransport
	KindEmptyDownload
)

func (k Kind) String() string {
	switch k {
	case KindEmptyConfig:
		return "empty_config"
	case KindInvalidURI:
		return "invalid_uri"
	case KindTransport:
		return "transport_failure"
	case KindEmptyDownload:
		return "empty_download"
	}
	return "unknown"
}

var (
	ErrNoBackgroundURL = errors.New("background: no BACKGROUND_IMAGE_URL provided")
	ErrEmptyDownload   = errors.New("background: downloaded file is empty")
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindUnknown when err did not come
// from a fetch.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Fetched collapses a Fetch result into success or failure.
func Fetched(err error) bool {
	return err == nil
}
