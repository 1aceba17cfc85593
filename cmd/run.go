package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/internal/app"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	global.Logger = logger

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	application.Start()

	go watchConfig(logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      application.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown err", zap.Error(err))
	}
	return application.Shutdown(ctx)
}

// watchConfig reports edits to the running config file. Changes take
// effect on the next restart; the watcher only surfaces them early.
func watchConfig(logger *zap.Logger) {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write)

	if err := w.Add(configPath); err != nil {
		logger.Debug("config watcher disabled", zap.Error(err))
		return
	}

	go func() {
		for {
			select {
			case <-w.Event:
				if _, err := app.LoadConfig(configPath); err != nil {
					logger.Warn("config file changed but does not parse", zap.Error(err))
				} else {
					logger.Info("config file changed, restart to apply")
				}
			case err := <-w.Error:
				logger.Debug("config watcher err", zap.Error(err))
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.Start(time.Second * 5); err != nil {
		logger.Debug("config watcher stopped", zap.Error(err))
	}
}

// newLogger builds a zap logger writing to stdout and, when
// configured, a log file.
func newLogger(cfg app.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	_ = level.Set(cfg.Level)

	var encoder zapcore.Encoder
	if cfg.Production {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), os.ModePerm); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
