// Package server initializes and runs the vault server: it loads
// configuration, validates key material, opens storage, and starts the HTTP
// API with graceful shutdown.
package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/timevault/internal/cryptox"
	"github.com/dmitrijs2005/timevault/internal/logging"
	"github.com/dmitrijs2005/timevault/internal/server/config"
	"github.com/dmitrijs2005/timevault/internal/server/httpapi"
	"github.com/dmitrijs2005/timevault/internal/server/links"
	"github.com/dmitrijs2005/timevault/internal/server/shared/db"
	"github.com/dmitrijs2005/timevault/internal/server/users"
	"github.com/dmitrijs2005/timevault/internal/server/vaults"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.HTTPServer
}

// loadCipher decodes ENC_KEY_BASE64 and builds the payload cipher. A missing
// or wrong-size key is a startup failure: the server must never run with a
// key it cannot decrypt existing payloads with.
func loadCipher(cfg *config.Config) (*cryptox.Cipher, error) {
	if cfg.EncKeyBase64 == "" {
		return nil, fmt.Errorf("ENC_KEY_BASE64 is not set")
	}

	key, err := base64.StdEncoding.DecodeString(cfg.EncKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("ENC_KEY_BASE64 is not valid base64: %w", err)
	}

	cipher, err := cryptox.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("ENC_KEY_BASE64: %w", err)
	}

	return cipher, nil
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	cipher, err := loadCipher(cfg)
	if err != nil {
		return nil, err
	}

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := cryptox.NewTokenHasher([]byte(cfg.TokenHMACSecret))
	jwtSecret := []byte(cfg.JWTSecret)

	us := users.NewService(rm.Users(), jwtSecret, cfg.SessionTokenValidityDuration)
	vs := vaults.NewService(rm.Vaults(), rm.AuditLogs(), cipher)
	ls := links.NewService(rm.Links(), rm.Vaults(), rm.AuditLogs(), hasher, cipher, cfg.BaseURL, logger)

	hs := httpapi.NewHTTPServer(httpapi.Options{
		Address:         cfg.EndpointAddrHTTP,
		JWTSecret:       jwtSecret,
		RateLimitRPS:    cfg.AccessRateLimitRPS,
		RateLimitBurst:  cfg.AccessRateLimitBurst,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger, us, vs, ls)

	return &App{config: cfg, logger: logger, httpServer: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
