package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/overtype/internal/config"
	"github.com/zjrosen/overtype/internal/log"
	"github.com/zjrosen/overtype/internal/mode"
	"github.com/zjrosen/overtype/internal/mode/playground"
	"github.com/zjrosen/overtype/internal/paths"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "overtype",
	Short:   "Styled pattern highlighting over plain text input",
	Long:    `Overtype overlays styled decorations on plain text by matching configured regex patterns, and tracks the caret through IME composition. Running it without a subcommand opens the interactive playground.`,
	Version: version,
	RunE:    runPlayground,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/overtype/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to debug.log")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("auto_reload_debounce", defaults.AutoReloadDebounce)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.placeholder", defaults.UI.Placeholder)

	path, found := paths.FindConfigFile(cfgFile)
	if !found && cfgFile == "" {
		// No config file anywhere - seed a default at the project location.
		// If the write fails, just continue with built-in defaults.
		_ = config.WriteDefaultConfig(path)
	}
	viper.SetConfigFile(path)
	_ = viper.ReadInConfig()

	// Unmarshal over the defaults so keys the file omits keep their
	// built-in values, the matcher list included.
	cfg = config.Defaults()
	_ = viper.Unmarshal(&cfg)
}

func runPlayground(_ *cobra.Command, _ []string) error {
	if debug := os.Getenv("OVERTYPE_DEBUG") != "" || debugFlag; debug {
		logPath := os.Getenv("OVERTYPE_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}

		cleanup, err := log.InitWithTeaLog(logPath, "overtype")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()

		log.Info(log.CatConfig, "overtype starting", "debug", true, "logPath", logPath)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	zone.NewGlobal()

	// The watcher needs the resolved path to re-read on change.
	configFilePath := viper.ConfigFileUsed()

	var model mode.Controller
	model, err := playground.New(cfg, configFilePath)
	if err != nil {
		return fmt.Errorf("creating playground: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	model.Close()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
