package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"moviegrip/internal/config"
	"moviegrip/internal/eventbus"
	"moviegrip/internal/logger"
	"moviegrip/internal/moviequery"
	"moviegrip/internal/notify"
	"moviegrip/internal/tmdb"
	"moviegrip/internal/ui"
)

var (
	cfgFile       string
	logLevel      string
	noPlaceholder bool
)

var rootCmd = &cobra.Command{
	Use:   "moviegrip [query]",
	Short: "Search The Movie Database from your terminal",
	Long: `moviegrip is a terminal client for The Movie Database (TMDB).
Type a query, page through the matching movies and open any of them
to read its details.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/moviegrip/config.toml)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&noPlaceholder, "no-placeholder", false, "clear the grid while a new page loads instead of keeping the previous one")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Create event bus; it logs through the configured logger once that exists
	bus := eventbus.New(zerolog.Nop())
	defer bus.Close()

	configEvents := make(chan eventbus.DomainEvent, 4)
	queueConfigEvent := func(e eventbus.DomainEvent) {
		select {
		case configEvents <- e:
		default:
		}
	}
	defer bus.Subscribe(eventbus.EventConfigLoaded, queueConfigEvent)()
	defer bus.Subscribe(eventbus.EventConfigSaved, queueConfigEvent)()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(cfgFile, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if noPlaceholder {
		cfg.UI.KeepPreviousData = false
	}

	// Set up logging
	appLog := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer appLog.Close()
	bus.SetLogger(appLog.Logger)
	log := appLog.WithComponent("main")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go logConfigEvents(ctx, configEvents, log)

	// Initialize services
	client := tmdb.NewClient(cfg.TMDB, appLog.Logger)
	if !client.IsConfigured() {
		log.Warn().Msg("No TMDB credentials configured")
	}
	fetcher := moviequery.New(client, moviequery.Options{
		StaleTime:        cfg.Cache.StaleTime(),
		GCTime:           cfg.Cache.GCTime(),
		MaxEntries:       cfg.Cache.MaxEntries,
		KeepPreviousData: cfg.UI.KeepPreviousData,
	}, bus, appLog.Logger)
	notifier := notify.New(bus, appLog.Logger)

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, fetcher, notifier, client.ImageURL, appLog.Logger)
	if len(args) > 0 {
		uiModel.SetInitialQuery(strings.Join(args, " "))
	}

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	// Set up event forwarding to UI
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventNotification,
		eventbus.EventFetchFailed,
		eventbus.EventFetchSucceeded,
	} {
		unsubscribe := bus.Subscribe(eventType, forward)
		defer unsubscribe()
	}

	if os.Getenv("MOVIEGRIP_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("Program exited with error")
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info().Msg("UI exited normally")

	return nil
}

// logConfigEvents records config file activity published on the bus
func logConfigEvents(ctx context.Context, events <-chan eventbus.DomainEvent, log zerolog.Logger) {
	for {
		select {
		case e := <-events:
			switch e := e.(type) {
			case eventbus.ConfigLoadedEvent:
				log.Info().Str("config", e.Path).Msg("Configuration loaded")
			case eventbus.ConfigSavedEvent:
				log.Info().Str("config", e.Path).Msg("Configuration saved")
			}
		case <-ctx.Done():
			return
		}
	}
}
