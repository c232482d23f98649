package bot

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"newssummarizer/internal/ratelimiter"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"mvdan.cc/xurls/v2"
)

// NewsSummarizer is the pipeline run for every link sent to the bot.
type NewsSummarizer interface {
	Summarize(ctx context.Context, url string) (string, error)
}

// telegramAPI is the part of the Telegram client used to answer chats.
type telegramAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Bot struct {
	client      *bot.Bot
	api         telegramAPI
	rateLimiter *ratelimiter.RateLimiter
	news        NewsSummarizer
	urlRe       *regexp.Regexp
	log         *slog.Logger
}

func New(token string, n NewsSummarizer, log *slog.Logger) (*Bot, error) {
	token = strings.TrimSpace(token)

	urlRe, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	b := &Bot{
		rateLimiter: ratelimiter.New(log),
		news:        n,
		urlRe:       urlRe,
		log:         log,
	}

	client, err := bot.New(token,
		bot.WithDefaultHandler(b.handleText),
		bot.WithErrorsHandler(func(err error) {
			log.Error("Telegram API error",
				"error", err)
		}),
	)
	if err != nil {
		b.rateLimiter.Stop()
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	client.RegisterHandlerMatchFunc(matchCommand("start", "help"), b.handleStart)

	b.client = client
	b.api = client

	return b, nil
}

// Start polls for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	b.client.Start(ctx)
}

func (b *Bot) Stop() {
	if b.rateLimiter != nil {
		b.rateLimiter.Stop()
	}
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, replyTo int, text string) error {
	return b.rateLimiter.Do(ctx, chatID, func(ctx context.Context) error {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      text,
			ParseMode: models.ParseModeMarkdown,
			LinkPreviewOptions: &models.LinkPreviewOptions{
				IsDisabled: bot.True(),
			},
		}
		if replyTo != 0 {
			params.ReplyParameters = &models.ReplyParameters{MessageID: replyTo}
		}

		_, err := b.api.SendMessage(ctx, params)

		return err
	})
}
