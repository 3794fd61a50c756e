package app

import (
	"fmt"
	"os"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/elevatemedia/invoicer/internal/config"
	"github.com/elevatemedia/invoicer/internal/crypto"
	"github.com/elevatemedia/invoicer/internal/db"
	"github.com/elevatemedia/invoicer/internal/dispatch"
	"github.com/elevatemedia/invoicer/internal/recordstore"
	"github.com/elevatemedia/invoicer/internal/repository"
	"github.com/elevatemedia/invoicer/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB

	Store      recordstore.Store
	Dispatcher dispatch.Dispatcher

	// Submissions is nil when the local history database could not open;
	// invoicing still works without it
	Submissions repository.SubmissionRepository

	Router   *service.Router
	Clients  service.ClientService
	Invoices service.InvoiceService
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting the record store credential from the keyring
// 3. Opening the local history database
// 4. Running migrations
// 5. Creating the store, dispatcher, and services
func New() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	keyring := crypto.NewKeyring()

	// Record store credential
	apiKey, err := keyring.Get(crypto.APIKeyName)
	if err != nil {
		fmt.Println("Setting up record store access for the first time...")
		apiKey, err = promptForAPIKey()
		if err != nil {
			return nil, fmt.Errorf("failed to set API key: %w", err)
		}
		if err := keyring.Set(crypto.APIKeyName, apiKey); err != nil {
			return nil, fmt.Errorf("failed to store API key: %w", err)
		}
	}

	store := recordstore.New(cfg.RecordStore.BaseURL, apiKey)
	dispatcher := dispatch.NewWebhookDispatcher(cfg.Dispatch.Endpoints)

	// Local history database. The encryption password is generated on first
	// run and lives only in the keyring.
	var database *db.DB
	var submissions repository.SubmissionRepository
	historyKey, err := keyring.Get(crypto.HistoryKeyName)
	if err != nil {
		historyKey = uuid.NewString()
		err = keyring.Set(crypto.HistoryKeyName, historyKey)
	}
	if err == nil {
		database, err = db.Open(cfg.History.Path, historyKey)
		if err == nil {
			if err := database.RunMigrations(); err != nil {
				database.Close()
				database = nil
			}
		}
	}
	if database != nil {
		submissions = repository.NewSubmissionRepo(database)
	} else {
		fmt.Fprintln(os.Stderr, "warning: submission history is unavailable")
	}

	router := service.NewRouter(cfg.Forms.Routes)
	clients := service.NewClientService(store)
	invoices := service.NewInvoiceService(cfg, dispatcher, submissions)

	return &App{
		Config:      cfg,
		DB:          database,
		Store:       store,
		Dispatcher:  dispatcher,
		Submissions: submissions,
		Router:      router,
		Clients:     clients,
		Invoices:    invoices,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// promptForAPIKey reads the record store credential on first run
func promptForAPIKey() (string, error) {
	fmt.Println()
	fmt.Println("The client store requires an API key.")
	fmt.Println("It will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter the record store API key: ")

	// Read without echo
	key, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	if len(key) == 0 {
		return "", fmt.Errorf("API key cannot be empty")
	}

	return string(key), nil
}
