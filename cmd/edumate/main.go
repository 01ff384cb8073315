package main

import (
	"database/sql"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
	"github.com/zobayerlabib/edumate/internal/adapters/storage"
	credentialStore "github.com/zobayerlabib/edumate/internal/adapters/storage/credential"
	"github.com/zobayerlabib/edumate/internal/adapters/tui"
	appsession "github.com/zobayerlabib/edumate/internal/application/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	// slog output would corrupt the terminal UI, so it goes to a file.
	logPath := envOrDefault("EDUMATE_LOG", "edumate.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))
	slog.Info("startup", "version", version)

	dbPath := envOrDefault("EDUMATE_STATE_DB", "edumate.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open state database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("state database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize state database: %v", err)
	}

	sessions := appsession.NewManager(credentialStore.NewSQLiteStore(db))

	timeout := api.DefaultTimeout
	if raw := os.Getenv("EDUMATE_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			log.Fatalf("invalid EDUMATE_TIMEOUT %q: want seconds", raw)
		}
		timeout = time.Duration(secs) * time.Second
	}

	baseURL := envOrDefault("EDUMATE_API_URL", "http://localhost:8000")
	client := api.NewClient(baseURL, sessions,
		api.WithTimeout(timeout),
		api.OnUnauthorized(sessions.Invalidate),
	)

	initialPath := "/"
	if len(os.Args) > 1 {
		initialPath = os.Args[1]
	}

	model := tui.NewModel(tui.Deps{
		Backend:     client,
		Sessions:    sessions,
		InitialPath: initialPath,
	})

	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		log.Fatalf("ui error: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
