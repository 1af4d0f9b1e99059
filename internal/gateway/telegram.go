// Package gateway adapts the Telegram long-polling transport to the command
// handlers. It is the only package that knows about the messaging API; the
// handlers never import it.
package gateway

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mester0723/plannerbot/internal/bot"
	"github.com/mester0723/plannerbot/internal/commands"
	"github.com/mester0723/plannerbot/internal/config"
)

type Gateway struct {
	api     *tgbotapi.BotAPI
	handler *bot.Bot
	log     *zap.Logger
	timeout int
}

func New(cfg config.TelegramConfig, handler *bot.Bot, log *zap.Logger) (*Gateway, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = cfg.Debug
	log.Info("telegram gateway authorized", zap.String("account", api.Self.UserName))
	return &Gateway{api: api, handler: handler, log: log, timeout: cfg.PollTimeoutSeconds}, nil
}

// Run polls for updates until ctx is canceled. Updates are handled in their
// own goroutines; Telegram may deliver concurrently across users and the
// store tolerates that.
func (g *Gateway) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = g.timeout
	updates := g.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			g.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go g.handle(ctx, update.Message)
		}
	}
}

func (g *Gateway) handle(ctx context.Context, msg *tgbotapi.Message) {
	// A fault must never take down the polling loop, and the user still
	// gets a reply. The handler recovers its own panics; this is the
	// backstop for anything that escapes it.
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("update handling panic",
				zap.Int64("chat_id", msg.Chat.ID),
				zap.Any("panic", r),
			)
			g.send(msg, bot.GenericErrorReply(fmt.Errorf("%v", r)))
		}
	}()

	username := ""
	if msg.From != nil {
		username = msg.From.UserName
	}

	res := g.handler.HandleMessage(ctx, msg.Chat.ID, username, msg.Text)
	g.send(msg, res)
}

func (g *Gateway) send(msg *tgbotapi.Message, res commands.Result) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, res.Text)
	reply.ReplyToMessageID = msg.MessageID
	if res.Markdown {
		reply.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := g.api.Send(reply); err != nil {
		g.log.Error("send reply failed",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Error(err),
		)
	}
}
