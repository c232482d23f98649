package bot

import (
	"context"
	"slices"
	"strings"

	"newssummarizer/internal/markdown"
	"newssummarizer/internal/news"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const startText = "👋 Send me a link to a news article and I will reply with a short summary\\.\n\n" +
	"Only the text of the page paragraphs is used, so some pages may summarize poorly\\."

func (b *Bot) handleStart(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if err := b.sendMessage(ctx, update.Message.Chat.ID, 0, startText); err != nil {
		b.log.ErrorContext(ctx, "Failed to send start message",
			"error", err,
			"chatID", update.Message.Chat.ID)
	}
}

func (b *Bot) handleText(ctx context.Context, _ *bot.Bot, update *models.Update) {
	message := update.Message
	if message == nil {
		return
	}

	chatID := message.Chat.ID
	articleURL := b.findArticleURL(message.Text)

	var reply string
	summarize := func() error {
		summary, err := b.news.Summarize(ctx, articleURL)
		reply = formatReply(summary, err)
		return err
	}

	var err error
	if articleURL == "" {
		err = summarize()
	} else {
		err = b.withSpinner(ctx, chatID, summarize)
	}
	if err != nil {
		b.log.WarnContext(ctx, "Failed to summarize linked article",
			"error", err,
			"chatID", chatID,
			"messageID", message.ID,
			"articleURL", articleURL)
	}

	if err = b.sendMessage(ctx, chatID, message.ID, reply); err != nil {
		b.log.ErrorContext(ctx, "Failed to send reply",
			"error", err,
			"chatID", chatID,
			"messageID", message.ID)
	}
}

// matchCommand matches messages whose first token is one of commands,
// optionally addressed to a bot as in "/start@SomeBot".
func matchCommand(commands ...string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}

		fields := strings.Fields(update.Message.Text)
		if len(fields) == 0 {
			return false
		}

		name, ok := strings.CutPrefix(fields[0], "/")
		if !ok {
			return false
		}
		name, _, _ = strings.Cut(name, "@")

		return slices.Contains(commands, name)
	}
}

// findArticleURL returns the first http(s) URL in text, or "" when there is none.
func (b *Bot) findArticleURL(text string) string {
	return strings.TrimSpace(b.urlRe.FindString(strings.TrimSpace(text)))
}

func formatReply(summary string, err error) string {
	if err != nil {
		return markdown.EscapeV2(news.Banner(err))
	}

	return "📝 " + markdown.Bold("Summary") + "\n\n" + markdown.EscapeV2(summary)
}
