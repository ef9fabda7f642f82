package notification

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/wb-go/wbf/logger"
)

// TelegramNotifier posts community announcements to a single group chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) NotifyEventCreated(ctx context.Context, event *domain.Event) {
	var text string
	switch event.Type {
	case domain.EventTypeVoting:
		text = fmt.Sprintf(
			"*New restaurant vote!*\n\n%s\nCast your vote before it closes.",
			event.CompanyName,
		)
	default:
		text = fmt.Sprintf(
			"*New food order open!*\n\n%s\nAdd your items while it lasts.",
			event.CompanyName,
		)
	}
	if event.Deadline != nil {
		text += fmt.Sprintf("\nDeadline (UTC): %s", event.Deadline.UTC().Format("02.01.2006 15:04"))
	}
	n.send(ctx, text)
}

func (n *TelegramNotifier) NotifyDeadlineExpired(ctx context.Context, event *domain.Event, winners []domain.VotingOption) {
	text := fmt.Sprintf("*%s stopped accepting input (deadline passed)*", event.CompanyName)

	if event.Type == domain.EventTypeVoting {
		if len(winners) == 0 {
			text += "\nNo votes were cast, so there is no winner."
		} else {
			names := make([]string, 0, len(winners))
			for _, w := range winners {
				names = append(names, w.Name)
			}
			text += fmt.Sprintf("\nWinner: %s (%d votes)", strings.Join(names, ", "), len(winners[0].Votes))
		}
	}

	n.send(ctx, text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)")
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
	}
}
