package news

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"newssummarizer/internal/summarizer"
)

// ArticleFetcher returns the extracted text of the article at url.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service runs fetch, extract and summarize for one URL at a time.
// It keeps no state between calls.
type Service struct {
	fetcher    ArticleFetcher
	summarizer summarizer.Summarizer
	log        *slog.Logger
}

func NewService(
	fetcher ArticleFetcher,
	s summarizer.Summarizer,
	log *slog.Logger,
) *Service {
	return &Service{
		fetcher:    fetcher,
		summarizer: s,
		log:        log,
	}
}

// Summarize returns the summary of the article at url. Failures are
// ErrEmptyURL or an *Error carrying the failed stage.
func (s *Service) Summarize(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrEmptyURL
	}

	start := time.Now()

	text, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch article",
			"error", err,
			"url", url)

		return "", &Error{Kind: KindFetch, URL: url, Err: err}
	}

	if text == "" {
		s.log.WarnContext(ctx, "Article has no paragraph text",
			"url", url)

		return "", &Error{Kind: KindFetch, URL: url, Err: ErrNoContent}
	}

	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to summarize article",
			"error", err,
			"url", url,
			"textLen", len(text))

		return "", &Error{Kind: KindSummarize, URL: url, Err: err}
	}

	summary = strings.TrimSpace(summary)

	s.log.InfoContext(ctx, "Article is summarized",
		"url", url,
		"textLen", len(text),
		"summaryLen", len(summary),
		"durationMs", time.Since(start).Milliseconds())

	return summary, nil
}
