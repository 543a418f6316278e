package delivery

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/models"
)

// Sender is the part of the Telegram bot API used for delivery
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram forwards reminders to one chat
type Telegram struct {
	sender Sender
	chatID int64
}

// NewTelegram authorizes the bot token against the Telegram API.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("telegram delivery requires a chat id")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.Info("Telegram delivery authorized", "bot", api.Self.UserName, "chat_id", chatID)
	return NewTelegramWithSender(api, chatID), nil
}

func NewTelegramWithSender(sender Sender, chatID int64) *Telegram {
	return &Telegram{sender: sender, chatID: chatID}
}

func (t *Telegram) Deliver(r models.Reminder) error {
	msg := tgbotapi.NewMessage(t.chatID, TelegramText(r))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.sender.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// TelegramText renders a reminder as Telegram HTML.
func TelegramText(r models.Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n%s", html.EscapeString(r.Title), html.EscapeString(r.Message))
	if details := Details(r); len(details) > 0 {
		b.WriteString("\n")
		for _, line := range details {
			fmt.Fprintf(&b, "\n<i>%s</i>", html.EscapeString(line))
		}
	}
	return b.String()
}
