// Package notify sends dashboard status reports via the Telegram Bot API.
// The report summarizes the loaded dataset so operators can see that a dashboard
// instance came up and with which data.
//
// Delivery is retried with a linear backoff. Callers treat failures as warnings.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/launchdash/internal/analysis"
)

// sender is the subset of *tgbotapi.BotAPI the client needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram notifications
type Client struct {
	bot            sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
	sleep          func(time.Duration)
}

// Summary describes a loaded dataset and where the dashboard is served.
type Summary struct {
	Source      string
	Addr        string
	Records     int
	Successes   []analysis.Slice // successful launches per site
	PayloadLow  float64
	PayloadHigh float64
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return newClient(bot, chatID, maxRetries, retryDelayBase)
}

func newClient(bot sender, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		sleep:          time.Sleep,
	}, nil
}

// SendSummary sends the dataset summary
func (c *Client) SendSummary(s Summary) error {
	msg := tgbotapi.NewMessage(c.chatID, formatSummary(s))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		if i < c.maxRetries-1 {
			c.sleep(c.retryDelayBase * time.Duration(i+1))
		}
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatSummary formats the summary into a MarkdownV2 message
func formatSummary(s Summary) string {
	var b strings.Builder

	b.WriteString("🚀 *Launch dashboard started*\n\n")
	fmt.Fprintf(&b, "🌐 Serving on `%s`\n", escapeMarkdownV2(s.Addr))
	fmt.Fprintf(&b, "📄 Dataset: %s\n", escapeMarkdownV2(s.Source))
	fmt.Fprintf(&b, "🧾 Records: %s across %d sites\n",
		escapeMarkdownV2(humanize.Comma(int64(s.Records))), len(s.Successes))
	fmt.Fprintf(&b, "⚖️ Payload: %s\n\n", escapeMarkdownV2(fmt.Sprintf("%s – %s kg",
		humanize.Commaf(s.PayloadLow), humanize.Commaf(s.PayloadHigh))))

	if len(s.Successes) > 0 {
		b.WriteString("*Successful launches by site*\n")
		for i, slice := range s.Successes {
			fmt.Fprintf(&b, "%d\\. %s: *%s*\n", i+1,
				escapeMarkdownV2(slice.Label), escapeMarkdownV2(humanize.Commaf(slice.Value)))
		}
	}

	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
