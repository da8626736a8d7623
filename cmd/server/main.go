// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	gormlogger "gorm.io/gorm/logger"

	"github.com/sympmatch/sympmatch/internal/config"
	"github.com/sympmatch/sympmatch/internal/database"
	"github.com/sympmatch/sympmatch/internal/logger"
	"github.com/sympmatch/sympmatch/internal/matching"
	"github.com/sympmatch/sympmatch/internal/server"
	"github.com/sympmatch/sympmatch/internal/session"
	"github.com/sympmatch/sympmatch/internal/voice"
)

// Version is set at build time via ldflags (e.g. goreleaser -X main.Version={{.Version}}).
var Version string

func main() {
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", 0, "Server port")
	dbType := flag.String("db-type", "", "Database type (sqlite or postgres)")
	dbPath := flag.String("db-path", "", "Database path (for sqlite)")
	dbDSN := flag.String("db-dsn", "", "Database DSN (for postgres)")
	sessionStore := flag.String("session-store", "", "Session store backend (file or redis)")
	enableVoice := flag.Bool("enable-voice", false, "Enable speech-to-text for /analyze/voice")
	logMode := flag.String("log-mode", "dev", "Log mode (dev or prod)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "SympMatch Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DB_TYPE                         Database type (sqlite or postgres)\n")
		fmt.Fprintf(os.Stderr, "  DB_PATH                         SQLite database path\n")
		fmt.Fprintf(os.Stderr, "  DB_DSN                          PostgreSQL connection string\n")
		fmt.Fprintf(os.Stderr, "  PORT                            Server port\n")
		fmt.Fprintf(os.Stderr, "  SESSION_STORE                   Session store backend (file or redis)\n")
		fmt.Fprintf(os.Stderr, "  REDIS_ADDR                      Redis address for the session store\n")
		fmt.Fprintf(os.Stderr, "  GOOGLE_APPLICATION_CREDENTIALS  Credentials for speech-to-text\n")
	}

	flag.Parse()

	// Load configuration
	var cfg *config.Config
	var err error

	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
		if err != nil {
			log.Printf("Warning: Failed to load config from %s: %v", *configPath, err)
			log.Println("Using defaults")
			cfg = config.DefaultConfig()
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			log.Printf("Warning: Failed to load default config: %v", err)
			log.Println("Using built-in defaults")
			cfg = config.DefaultConfig()
		}
	}

	applyEnvOverrides(cfg)
	applyCLIOverrides(cfg, *dbType, *dbPath, *dbDSN, *sessionStore, *port, *enableVoice)

	appLog, err := logger.New(*logMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	if Version != "" {
		appLog.Info("starting sympmatch", "version", Version)
	}
	appLog.Info("configuration", "database", cfg.Database.Type, "session_store", cfg.Session.Store, "voice", cfg.Voice.Enabled)

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal("server exited", "error", err)
	}
}

func run(cfg *config.Config, appLog *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Connect(&database.Config{
		Type:        cfg.Database.Type,
		SQLitePath:  cfg.Database.SQLitePath,
		PostgresDSN: cfg.Database.PostgresDSN,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store := database.NewStore(db)
	seeded, err := store.Seed()
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	if seeded > 0 {
		appLog.Info("seeded disease dataset", "records", seeded)
	}

	// Session state
	kv, err := newKeyValueStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}
	sessions, err := session.NewManager(ctx, kv)
	if err != nil {
		return fmt.Errorf("failed to load session state: %w", err)
	}

	// Voice
	var transcriber voice.Transcriber
	if cfg.Voice.Enabled {
		t, err := voice.NewGoogleTranscriber(ctx, appLog, cfg.Voice.LanguageCode)
		if err != nil {
			return fmt.Errorf("failed to create transcriber: %w", err)
		}
		defer t.Close()
		transcriber = t
	}

	var speaker voice.Speaker
	if cfg.Matching.SpeakResults {
		speaker = voice.NewLogSpeaker(appLog)
	}

	analyzer := matching.NewAnalyzer(store, sessions, speaker, appLog, cfg.Matching.MaxResults, cfg.Matching.SpeakResults)

	router := server.NewRouter(server.RouterConfig{
		Diseases: server.NewDiseaseHandler(store, appLog),
		Search:   server.NewSearchHandler(store, appLog),
		Analyze:  server.NewAnalyzeHandler(analyzer, transcriber, appLog),
		Sessions: server.NewSessionHandler(sessions, appLog),
		Log:      appLog,
	})

	srv := server.New(cfg.Server.Host, cfg.Server.Port, router, appLog)
	return srv.Run(ctx)
}

func newKeyValueStore(ctx context.Context, cfg *config.Config) (session.KeyValueStore, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		return session.NewRedisStore(ctx, cfg.Session.Redis.Addr, cfg.Session.Redis.Password, cfg.Session.Redis.DB)
	default:
		return session.NewFileStore(cfg.Session.FilePath)
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *config.Config) {
	if dbType := getEnv("DB_TYPE", "SYMPMATCH_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}
	if dbPath := getEnv("DB_PATH", "SYMPMATCH_DB_PATH"); dbPath != "" {
		cfg.Database.SQLitePath = dbPath
	}
	if dbDSN := getEnv("DB_DSN", "SYMPMATCH_DB_DSN"); dbDSN != "" {
		cfg.Database.PostgresDSN = dbDSN
	}
	if portStr := getEnv("PORT", "SYMPMATCH_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		}
	}
	if store := getEnv("SESSION_STORE", "SYMPMATCH_SESSION_STORE"); store != "" {
		cfg.Session.Store = store
	}
	if addr := getEnv("REDIS_ADDR", "SYMPMATCH_REDIS_ADDR"); addr != "" {
		cfg.Session.Redis.Addr = addr
	}
}

// applyCLIOverrides applies command-line flag overrides to configuration
func applyCLIOverrides(cfg *config.Config, dbType, dbPath, dbDSN, sessionStore string, port int, enableVoice bool) {
	if dbType != "" {
		cfg.Database.Type = dbType
	}
	if dbPath != "" {
		cfg.Database.SQLitePath = dbPath
	}
	if dbDSN != "" {
		cfg.Database.PostgresDSN = dbDSN
	}
	if sessionStore != "" {
		cfg.Session.Store = sessionStore
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if enableVoice {
		cfg.Voice.Enabled = true
	}
}

// getEnv tries multiple environment variable names and returns the first non-empty value
func getEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}
