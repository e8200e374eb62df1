package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/and161185/medhub/internal/catalog"
	"github.com/and161185/medhub/internal/config"
	"github.com/and161185/medhub/internal/crypto"
	"github.com/and161185/medhub/internal/limiter"
	"github.com/and161185/medhub/internal/model"
	"github.com/and161185/medhub/internal/repository/memory"
	"github.com/and161185/medhub/internal/service"
	"github.com/and161185/medhub/internal/store"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logger, os.Stdout)
	if err != nil {
		fail(err)
	}
	defer a.st.Close()

	logger.Info("medhub started", zap.String("version", version), zap.String("auth", cfg.AuthMode))
	if err := a.run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		fail(err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// newApp assembles the store and its collaborators from cfg.
func newApp(cfg config.Config, logger *zap.Logger, out io.Writer) (*app, error) {
	signKey := []byte(cfg.JWTKey)
	if len(signKey) == 0 {
		k, err := crypto.RandBytes(32)
		if err != nil {
			return nil, err
		}
		signKey = k
		logger.Warn("no jwt key configured, using an ephemeral one")
	}

	cat := catalog.Fixture()
	if cfg.ExtraDoctors > 0 {
		cat = cat.WithDoctors(catalog.GenerateDoctors(cfg.ExtraDoctors, cfg.CatalogSeed)...)
	}

	a := &app{
		cat:     cat,
		signKey: signKey,
		out:     out,
		log:     logger,
		today:   time.Now,
	}

	var auth store.Authenticator
	switch cfg.AuthMode {
	case config.AuthDirectory:
		lim := limiter.NewMemory(cfg.FailWindow, cfg.MaxLoginFails, cfg.LockoutFor)
		svc := service.NewAuthService(memory.NewUserRepo(), signKey, cfg.TokenTTL, lim, logger)
		a.auth = svc
		auth = svc
	default:
		auth = service.NewMockAuthenticator(cfg.LoginDelay, signKey, cfg.TokenTTL)
	}

	var opts []store.Option
	if cfg.DarkTheme {
		opts = append(opts, store.WithTheme(model.ThemeDark))
	}
	a.st = store.New(auth, logger, opts...)
	a.book = service.NewBookingService(a.cat, a.st, logger)

	a.st.Subscribe(func(s store.State) {
		logger.Debug("state changed",
			zap.Uint64("version", s.Version),
			zap.Int("cart_units", s.CartCount()),
			zap.Int("orders", len(s.Orders)))
	})
	store.Watch(a.st,
		func(s store.State) bool { return s.IsAuthenticated },
		func(x, y bool) bool { return x == y },
		func(signedIn bool) {
			if signedIn {
				fmt.Fprintln(out, "* signed in")
				return
			}
			fmt.Fprintln(out, "* signed out")
		})
	return a, nil
}
