package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"newssummarizer/internal/news"
	"newssummarizer/internal/ratelimiter"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"mvdan.cc/xurls/v2"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()

	urlRe, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		t.Fatalf("create regexp: %v", err)
	}

	return &Bot{urlRe: urlRe, log: slog.Default()}
}

func TestFindArticleURL(t *testing.T) {
	b := newTestBot(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"Bare URL", "https://news.example.com/a?id=1", "https://news.example.com/a?id=1"},
		{"URL inside text", "please read http://news.example.com/b today", "http://news.example.com/b"},
		{"First of many", "https://a.example.com/1 https://b.example.com/2", "https://a.example.com/1"},
		{"No scheme", "news.example.com/a", ""},
		{"Other scheme", "ftp://files.example.com/a", ""},
		{"Empty", "   ", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := b.findArticleURL(test.text); got != test.want {
				t.Errorf("findArticleURL(%q) = %q, want %q", test.text, got, test.want)
			}
		})
	}
}

func TestFormatReplySummary(t *testing.T) {
	got := formatReply("Pets are great.", nil)
	want := "📝 *Summary*\n\nPets are great\\."

	if got != want {
		t.Fatalf("formatReply() = %q, want %q", got, want)
	}
}

func TestFormatReplyFailures(t *testing.T) {
	got := formatReply("", news.ErrEmptyURL)
	if got != "⚠️ Please enter a valid URL\\." {
		t.Fatalf("unexpected empty URL reply: %q", got)
	}

	fetchErr := &news.Error{Kind: news.KindFetch, Err: errors.New("connection refused")}
	got = formatReply("", fetchErr)
	if !strings.HasPrefix(got, "⚠️ Failed to fetch news: connection refused") {
		t.Fatalf("unexpected fetch failure reply: %q", got)
	}
}

func TestMatchCommand(t *testing.T) {
	match := matchCommand("start", "help")

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"Start", "/start", true},
		{"Start with payload", "/start payload", true},
		{"Addressed to bot", "/start@NewsBot", true},
		{"Help", "  /help", true},
		{"Longer command", "/startup news https://news.example.com/a", false},
		{"Plain text", "hello /start", false},
		{"Empty", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			update := &models.Update{Message: &models.Message{Text: test.text}}
			if got := match(update); got != test.want {
				t.Errorf("match(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}

	if match(&models.Update{}) {
		t.Errorf("expected update without message not to match")
	}
}

type stubNews struct {
	mu      sync.Mutex
	summary string
	urls    []string
}

func (s *stubNews) Summarize(_ context.Context, url string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.urls = append(s.urls, url)
	if url == "" {
		return "", news.ErrEmptyURL
	}
	return s.summary, nil
}

func (s *stubNews) calledURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.urls...)
}

type fakeAPI struct {
	mu       sync.Mutex
	messages []*bot.SendMessageParams
	actions  int
}

func (f *fakeAPI) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, params)
	return &models.Message{}, nil
}

func (f *fakeAPI) SendChatAction(_ context.Context, _ *bot.SendChatActionParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.actions++
	return true, nil
}

func (f *fakeAPI) sent() ([]*bot.SendMessageParams, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*bot.SendMessageParams(nil), f.messages...), f.actions
}

func newHandlerTestBot(t *testing.T, n NewsSummarizer) (*Bot, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	rl := ratelimiter.New(slog.Default())
	t.Cleanup(rl.Stop)

	b := newTestBot(t)
	b.api = api
	b.rateLimiter = rl
	b.news = n

	return b, api
}

func textUpdate(text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   5,
		Chat: models.Chat{ID: 42},
		Text: text,
	}}
}

func TestHandleTextRepliesWithSummary(t *testing.T) {
	n := &stubNews{summary: "Pets are great."}
	b, api := newHandlerTestBot(t, n)

	b.handleText(context.Background(), nil, textUpdate("read https://news.example.com/a please"))

	urls := n.calledURLs()
	if len(urls) != 1 || urls[0] != "https://news.example.com/a" {
		t.Fatalf("unexpected summarized URLs: %v", urls)
	}

	messages, _ := api.sent()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	msg := messages[0]
	if msg.ChatID != int64(42) {
		t.Errorf("unexpected chat ID: %v", msg.ChatID)
	}
	if msg.Text != formatReply("Pets are great.", nil) {
		t.Errorf("unexpected reply text: %q", msg.Text)
	}
	if msg.ParseMode != models.ParseModeMarkdown {
		t.Errorf("unexpected parse mode: %q", msg.ParseMode)
	}
	if msg.ReplyParameters == nil || msg.ReplyParameters.MessageID != 5 {
		t.Errorf("expected reply to message 5, got %+v", msg.ReplyParameters)
	}
}

func TestHandleTextWithoutURLSkipsTyping(t *testing.T) {
	n := &stubNews{summary: "unused"}
	b, api := newHandlerTestBot(t, n)

	b.handleText(context.Background(), nil, textUpdate("no link in here"))

	messages, actions := api.sent()
	if actions != 0 {
		t.Errorf("expected no chat actions, got %d", actions)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Text != formatReply("", news.ErrEmptyURL) {
		t.Errorf("unexpected reply text: %q", messages[0].Text)
	}
}
