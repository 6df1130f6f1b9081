package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"selectkit/internal/config"
	"selectkit/internal/eventbus"
	"selectkit/internal/logging"
	"selectkit/internal/options"
	"selectkit/internal/ui"
)

type flags struct {
	configPath  string
	optionsFile string
	logFile     string
	limitPill   int
	fuzzy       bool
	single      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:          "selectkit",
		Short:        "Select box and autocomplete widgets for the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&f.optionsFile, "options", "", "TOML file with the option list")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "log file path")
	cmd.Flags().IntVar(&f.limitPill, "limit-pill", 0, "tags shown while the autocomplete is closed")
	cmd.Flags().BoolVar(&f.fuzzy, "fuzzy", false, "match the query as a fuzzy pattern")
	cmd.Flags().BoolVar(&f.single, "single", false, "make the autocomplete hold a single option")

	cmd.AddCommand(newInitConfigCmd(f))
	return cmd
}

func newInitConfigCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configSvc := config.NewConfigService(f.configPath)
			if err := configSvc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config written")
			return nil
		},
	}
}

func run(cmd *cobra.Command, f *flags) error {
	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(f.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Set up logging
	logCloser := logging.Setup(cfg.LogFile)
	defer logCloser.Close()

	subscribeAudit(bus)
	log.Printf("Config loaded, options file %q", cfg.OptionsFile)

	list, source, err := loadOptions(cfg.OptionsFile)
	if err != nil {
		return err
	}

	uiModel, err := ui.NewModel(cfg, list, bus)
	if err != nil {
		return err
	}
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Forward events the UI reports in its status line
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	bus.Subscribe(eventbus.EventOptionsLoaded, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Publish(eventbus.OptionsLoadedEvent{Source: source, Count: len(list)})

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// applyFlags lets explicitly set flags override the config file
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	if cmd.Flags().Changed("options") {
		cfg.OptionsFile = f.optionsFile
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if cmd.Flags().Changed("limit-pill") {
		cfg.Widgets.LimitPill = f.limitPill
	}
	if f.fuzzy {
		cfg.Widgets.FilterStrategy = string(options.StrategyFuzzy)
	}
	if f.single {
		cfg.Widgets.Multiple = false
	}
}

// loadOptions reads the option list, falling back to the demo data
func loadOptions(path string) ([]*options.Option, string, error) {
	if path == "" {
		return ui.DemoOptions(), "demo data", nil
	}
	list, err := options.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return list, path, nil
}

// subscribeAudit logs every choice the widgets report
func subscribeAudit(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventSelectionCommitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionCommittedEvent); ok {
			log.Printf("%s: selection committed %v", event.Widget, event.Labels)
		}
	})
	bus.Subscribe(eventbus.EventTagRemoved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.TagRemovedEvent); ok {
			log.Printf("%s: tag %q removed", event.Widget, event.Label)
		}
	})
	bus.Subscribe(eventbus.EventQueryChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.QueryChangedEvent); ok {
			log.Printf("%s: query %q", event.Widget, event.Query)
		}
	})
}
