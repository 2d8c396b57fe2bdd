// Command syslog-collector runs the raw-socket syslog collector core
// as a standalone process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/netweaver/syslogcollector/internal/collector"
	"github.com/netweaver/syslogcollector/internal/config"
	"github.com/netweaver/syslogcollector/internal/sink"
	"github.com/netweaver/syslogcollector/internal/sink/logsink"
	"github.com/netweaver/syslogcollector/internal/sink/postgres"
)

func main() {
	var settingsPath string
	var verbose bool
	flag.StringVar(&settingsPath, "settings", "configs/syslog-collector.json", "path to the settings file")
	flag.StringVar(&settingsPath, "s", "configs/syslog-collector.json", "shorthand for -settings")
	flag.BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	flag.BoolVar(&verbose, "v", false, "shorthand for -verbose")
	flag.Parse()

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(settingsPath)
	if err != nil {
		logger.Fatal("failed to load settings", zap.Error(err))
	}

	sinks, closeSinks, err := buildSinks(logger)
	if err != nil {
		logger.Fatal("failed to build sinks", zap.Error(err))
	}
	defer closeSinks()

	dispatcher := sink.NewDispatcher(logger, sinks...)
	c := collector.New(cfg, logger, dispatcher)

	if err := c.Start(); err != nil {
		logger.Fatal("failed to start collector", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	if err := c.Stop(); err != nil {
		logger.Error("collector shutdown reported an error", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.EncoderConfig.TimeKey = "timestamp"
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return loggerConfig.Build()
}

// buildSinks always wires a logging sink, plus a Postgres sink when
// DATABASE_URL is set. The returned closer flushes and releases any
// sink that needs it.
func buildSinks(logger *zap.Logger) ([]sink.Sink, func(), error) {
	sinks := []sink.Sink{logsink.New(logger)}
	closers := []func() error{}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := postgres.New(context.Background(), dsn, postgres.DefaultOptions(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting postgres sink: %w", err)
		}
		sinks = append(sinks, pg)
		closers = append(closers, pg.Close)
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("error closing sink", zap.Error(err))
			}
		}
	}
	return sinks, closeAll, nil
}
