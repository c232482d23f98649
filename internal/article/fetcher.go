package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 5 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
)

type Fetcher struct {
	client       *http.Client
	maxBodyBytes int64
	log          *slog.Logger
}

func NewFetcher(timeout time.Duration, maxBodyBytes int64, log *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return &Fetcher{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// Fetch downloads the page at articleURL and returns the text of its paragraphs.
// Any request or parse failure is returned as an error, there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, articleURL string) (string, error) {
	articleURL = strings.TrimSpace(articleURL)
	if articleURL == "" {
		return "", errors.New("article URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"articleURL", articleURL)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.log.WarnContext(ctx, "Unexpected article status, parsing body anyway",
			"articleURL", articleURL,
			"status", resp.StatusCode)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("create charset reader: %w", err)
	}

	text, err := ExtractText(body)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	f.log.DebugContext(ctx, "Article is fetched",
		"articleURL", articleURL,
		"status", resp.StatusCode,
		"textLen", len(text))

	return text, nil
}

// ExtractText joins the text content of every <p> element in document order
// with single spaces and trims the result. Boilerplate paragraphs are kept.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("create document from reader: %w", err)
	}

	paragraphs := doc.Find("p").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})

	return strings.TrimSpace(strings.Join(paragraphs, " ")), nil
}
