package reminders

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/wird/internal/cli"
	"github.com/julianstephens/wird/internal/delivery"
	wirderrors "github.com/julianstephens/wird/internal/errors"
	"github.com/julianstephens/wird/internal/keyring"
	"github.com/julianstephens/wird/internal/logger"
	"github.com/julianstephens/wird/internal/scheduler"
)

var newTelegramFunc = func(token string, chatID int64) (scheduler.DeliveryFunc, error) {
	tg, err := delivery.NewTelegram(token, chatID)
	if err != nil {
		return nil, err
	}
	return tg.Deliver, nil
}

type RunCmd struct {
	Quiet          bool   `help:"Do not print reminders to the terminal."`
	TelegramToken  string `help:"Telegram bot token. Falls back to the OS keyring." env:"WIRD_TELEGRAM_TOKEN"`
	TelegramChatID int64  `help:"Telegram chat that receives reminders." env:"WIRD_TELEGRAM_CHAT_ID"`
}

func (c *RunCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.serve(sigCtx, ctx)
}

// serve runs the scheduler until parent is cancelled.
func (c *RunCmd) serve(parent context.Context, ctx *cli.Context) error {
	sinks, err := c.sinks(ctx)
	if err != nil {
		return err
	}
	ctx.Scheduler.SetDelivery(delivery.Fanout(sinks...))

	if err := ctx.Scheduler.Start(parent); err != nil {
		if errors.Is(err, scheduler.ErrDisabled) {
			return wirderrors.WithHint(err, "enable them with 'wird settings --enabled'")
		}
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "wird is running with %d reminder(s) planned. Press Ctrl+C to stop.\n", len(ctx.Scheduler.Reminders()))

	<-parent.Done()
	ctx.Scheduler.Stop()
	return nil
}

func (c *RunCmd) sinks(ctx *cli.Context) ([]scheduler.DeliveryFunc, error) {
	var sinks []scheduler.DeliveryFunc
	if !c.Quiet {
		sinks = append(sinks, delivery.NewConsole(ctx.Stdout()).Deliver)
	}

	token, err := keyring.Resolve(keyring.SecretTelegramToken, c.TelegramToken)
	if err != nil {
		logger.Warn("Could not read Telegram token from keyring", "error", err)
	}
	switch {
	case token != "" && c.TelegramChatID != 0:
		tg, err := newTelegramFunc(token, c.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to set up Telegram delivery: %w", err)
		}
		sinks = append(sinks, tg)
	case token != "":
		logger.Warn("Telegram token found but no chat id, set WIRD_TELEGRAM_CHAT_ID")
	}

	if len(sinks) == 0 {
		return nil, wirderrors.WithHint(scheduler.ErrNoDelivery, "drop --quiet or configure Telegram delivery")
	}
	return sinks, nil
}
