package bot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/bot/config"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/eosbot/internal/bot/services"
	"github.com/dmitrijs2005/eosbot/internal/conversation"
	"github.com/dmitrijs2005/eosbot/internal/eos"
	"github.com/dmitrijs2005/eosbot/internal/logging"
	"github.com/dmitrijs2005/eosbot/internal/session"
	"github.com/dmitrijs2005/eosbot/internal/telegram"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// App wires configuration, storage, chain access and the Telegram poll
// loop together.
type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	client     *telegram.BotClient
	bot        *Bot
	dispatcher *Dispatcher
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	chain := eos.NewClient(cfg.NodeURL)
	authorizer := session.NewAuthorizer(session.NewMemoryStore(), rm.Users(db))
	tokens := session.NewTokenIssuer([]byte(cfg.SecretKey), cfg.UnlockTokenTTL)
	collector := conversation.NewCollector(conversation.NewMemoryPromptStore())

	wallet := services.NewWalletService(db, rm, chain, authorizer)
	orders := services.NewOrderService(db, rm)

	client := telegram.NewBotClient(cfg.TelegramEndpoint, cfg.TelegramToken, cfg.PollTimeout)
	bot := New(client, wallet, orders, authorizer, tokens, collector, logger)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		client:     client,
		bot:        bot,
		dispatcher: NewDispatcher(bot.Handle),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run polls for updates until the context is cancelled or a termination
// signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting bot...")
	app.initSignalHandler(cancelFunc)

	var offset int64
	for {
		select {
		case <-ctx.Done():
			app.dispatcher.Close()
			if err := app.db.Close(); err != nil {
				app.logger.Error(ctx, "closing db", "error", err)
			}
			app.logger.Info(ctx, "Bot stopped")
			return
		default:
		}

		updates, err := app.client.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			app.logger.Error(ctx, "polling updates", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for i := range updates {
			upd := &updates[i]
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			app.dispatcher.Dispatch(ctx, upd)
		}
	}
}
