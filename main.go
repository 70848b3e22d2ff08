package main

import (
	"fmt"
	"os"
	"strings"

	"gazette/app/admin"
	"gazette/app/config"
	"gazette/app/logging"
	"gazette/app/routes"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("gazette version %s\n", cliVersion)
	case "serve":
		serve()
	case "hash-password":
		hashPassword()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: gazette <command> [options]
Commands:
  help                 Display this help message.
  version              Show version information.
  serve                Run the gazette web service. Configured via GAZETTE_* environment variables.
  hash-password <pw>   Print the bcrypt hash of a password for GAZETTE_ADMIN_PASSWORD_HASH.
`
	fmt.Println(helpText)
}

// serve loads the configuration, opens the database and runs the HTTP
// server until the process is stopped.
func serve() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gazette: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Setup(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "gazette: %v\n", err)
		os.Exit(1)
	}
	log := logging.Named("main")

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		log.Fatal("failed to create media directory", zap.Error(err))
	}

	opts := badger.DefaultOptions(cfg.DBPath)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer db.Close()

	router := routes.Setup(db, cfg)

	log.Info("starting gazette", zap.String("addr", cfg.Addr))
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func hashPassword() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: a password argument is required for hash-password")
		os.Exit(1)
	}
	hash, err := admin.HashPassword(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gazette: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
