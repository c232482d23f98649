package news

import (
	"errors"
	"fmt"
)

// Kind tells which stage of the pipeline failed.
type Kind int

const (
	KindFetch Kind = iota + 1
	KindSummarize
)

const (
	FetchFailureMarker     = "⚠️ Failed to fetch news: "
	SummarizeFailureMarker = "⚠️ Failed to summarize news: "
	EmptyURLWarning        = "⚠️ Please enter a valid URL."
)

var (
	ErrEmptyURL  = errors.New("URL is empty")
	ErrNoContent = errors.New("no paragraph text found")
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindSummarize:
		return "summarize"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (URL = %s): %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failed stage of err, or 0 when err is not a pipeline error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// Banner renders err as the text shown to the user.
func Banner(err error) string {
	if errors.Is(err, ErrEmptyURL) {
		return EmptyURLWarning
	}

	var e *Error
	if !errors.As(err, &e) {
		return SummarizeFailureMarker + err.Error()
	}

	switch e.Kind {
	case KindFetch:
		return FetchFailureMarker + e.Err.Error()
	default:
		return SummarizeFailureMarker + e.Err.Error()
	}
}
