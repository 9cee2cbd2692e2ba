package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/danielhkuo/matchboard/cliparse"
	"github.com/danielhkuo/matchboard/db"
	"github.com/danielhkuo/matchboard/metrics"
	"github.com/danielhkuo/matchboard/models"
	"github.com/danielhkuo/matchboard/router"
	"github.com/danielhkuo/matchboard/source"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx := context.Background()

	// Connect to the nomination source
	src, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		slog.Error("source setup failed", "source", cfg.SourceType, "error", err)
		os.Exit(1)
	}
	defer closeSource()
	slog.Info("Nomination source ready", "source", src.Name(), "cache_ttl", cfg.CacheTTL)

	m := metrics.New()
	cache := source.NewCache(src, cfg.CacheTTL,
		source.WithFetchTimeout(cfg.FetchTimeout),
		source.WithMetrics(m),
	)

	// Create router
	mux := router.NewRouter(cache, cfg, m)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newSource builds the configured source. The returned func releases
// whatever the source holds open.
func newSource(ctx context.Context, cfg cliparse.Config) (source.Source, func(), error) {
	noop := func() {}

	switch cfg.SourceType {
	case models.SourceSheets:
		opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
		switch {
		case cfg.SheetsAPIKey != "":
			opts = append(opts, option.WithAPIKey(cfg.SheetsAPIKey))
		case cfg.CredentialsFile != "":
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		src, err := source.NewSheetsSource(ctx, cfg.SheetID, cfg.Worksheet, opts...)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil

	case models.SourceCSV:
		return source.NewCSVSource(cfg.CSVLocation, nil), noop, nil

	case models.SourceSQL:
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("schema creation failed: %w", err)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
		return source.NewSQLSource(conn), func() { closeDB(conn) }, nil
	}

	return nil, noop, fmt.Errorf("unknown source type %q", cfg.SourceType)
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		slog.Warn("database close failed", "error", err)
	}
}
