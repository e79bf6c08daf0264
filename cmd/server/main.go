package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type App struct {
	config *Config
	bunDB  *bun.DB
	repo   auth.RepositoryManager
	auth   auth.Authenticator
	srv    *fiber.App
	logger *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("app"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := LoadConfig()
	if err != nil {
		lgr.GetLogger("config").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		lgr.GetLogger("persistence").Error("failed to initialize persistence", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPAuth(ctx, app); err != nil {
		lgr.GetLogger("auth").Error("failed to initialize auth", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := app.srv.Listen(cfg.ServerAddr); err != nil {
			lgr.GetLogger("http").Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	lgr.GetLogger("http").Info("listening", "addr", cfg.ServerAddr)

	WaitExitSignal()

	if err := app.srv.Shutdown(); err != nil {
		lgr.GetLogger("http").Error("shutdown error", "error", err)
	}

	if err := app.bunDB.Close(); err != nil {
		lgr.GetLogger("persistence").Error("close error", "error", err)
	}
}

func WithPersistence(ctx context.Context, app *App) error {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(app.config.DSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if _, err := db.NewCreateTable().
		Model((*auth.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	// Registration relies on this index to reject concurrent duplicates.
	if _, err := db.NewCreateIndex().
		Model((*auth.User)(nil)).
		Index("users_email_idx").
		Unique().
		Column("email").
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	repo := auth.NewRepositoryManager(db)
	if err := repo.Validate(); err != nil {
		return err
	}

	app.bunDB = db
	app.repo = repo

	return nil
}

func WithHTTPAuth(ctx context.Context, app *App) error {
	cfg := app.config

	userProvider := auth.NewUserProvider(app.repo.Users()).
		WithLogger(app.GetLogger("auth:prv"))

	authenticator := auth.NewAuthenticator(userProvider, cfg).
		WithLogger(app.GetLogger("auth:authz"))

	app.auth = authenticator

	srv := fiber.New(fiber.Config{
		AppName: "go-auth-api",
	})

	guard := auth.ProtectedRoute(cfg, authenticator.TokenService())

	auth.RegisterAuthRoutes(srv, guard,
		func(ac *auth.AuthController) *auth.AuthController {
			ac.Repo = app.repo
			ac.Auther = authenticator
			ac.Logger = app.GetLogger("auth:ctrl")
			return ac
		})

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
