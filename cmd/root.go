package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/codecheck/internal/api"
	"github.com/zhubert/codecheck/internal/app"
	"github.com/zhubert/codecheck/internal/clipboard"
	"github.com/zhubert/codecheck/internal/config"
	"github.com/zhubert/codecheck/internal/logger"
	"github.com/zhubert/codecheck/internal/notification"
	"github.com/zhubert/codecheck/internal/report"
)

var (
	debugMode             bool
	quietMode             bool
	serverURL             string
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "codecheck",
	Short: "Browse your repositories and check code from the terminal",
	Long: `codecheck is a terminal client for the codecheck service.
Browse the repositories of your signed-in account, load a file (or type
or paste code) into the editor, and submit it for analysis. The analysis
report is saved as report.md in your download directory.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server URL (overrides config and "+config.EnvServer+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.codecheck/config.json)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("codecheck %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("codecheck %s\n", version)
}

// loadConfig loads the config file and applies the --server override
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if serverURL != "" {
		cfg.SetServerURL(serverURL)
	}
	return cfg, nil
}

// loadFileConfig loads only what is stored in the config file, for
// commands that save it back
func loadFileConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

// newClient loads the config and builds an API client for it
func newClient() (*config.Config, *api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := api.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, client, err := newClient()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	deps := app.Deps{
		Backend: client,
		Reports: report.Saver{Dir: cfg.GetDownloadDir()},
		Notify:  notification.ReportSaved,
	}
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable: %v", err)
	} else {
		deps.Clipboard = clipboard.System{}
	}

	logger.Info("starting codecheck %s against %s", version, cfg.GetServerURL())

	m := app.New(cfg, version, deps)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
