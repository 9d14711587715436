package cmd

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"slices"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/codecheck/internal/config"
	"github.com/zhubert/codecheck/internal/ui"
)

const optionNotifications = "notifications"

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit server, session and download settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

// configureValues are the fields the form edits
type configureValues struct {
	ServerURL     string
	SessionCookie string
	DownloadDir   string
	Theme         string
	Options       []string
}

// valuesFromConfig reads the current settings into form values
func valuesFromConfig(cfg *config.Config) configureValues {
	_, cookie := cfg.GetSessionCookie()
	v := configureValues{
		ServerURL:     cfg.GetServerURL(),
		SessionCookie: cookie,
		DownloadDir:   cfg.GetDownloadDir(),
		Theme:         cfg.GetTheme(),
	}
	if v.Theme == "" {
		v.Theme = string(ui.CurrentThemeName())
	}
	if cfg.GetNotificationsEnabled() {
		v.Options = append(v.Options, optionNotifications)
	}
	return v
}

// apply writes the form values back to cfg
func (v configureValues) apply(cfg *config.Config) {
	cfg.SetServerURL(v.ServerURL)
	cfg.SetSessionCookie(v.SessionCookie)
	cfg.SetDownloadDir(v.DownloadDir)
	cfg.SetTheme(v.Theme)
	cfg.SetNotificationsEnabled(slices.Contains(v.Options, optionNotifications))
}

// validateServerURL accepts absolute http and https URLs
func validateServerURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("enter an http:// or https:// URL")
	}
	return nil
}

func newConfigureForm(v *configureValues) *huh.Form {
	themes := ui.ThemeNames()
	themeOptions := make([]huh.Option[string], len(themes))
	for i, name := range themes {
		themeOptions[i] = huh.NewOption(ui.GetTheme(name).Name, string(name))
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notification when a report is saved", optionNotifications).
			Selected(slices.Contains(v.Options, optionNotifications)),
	}

	server := huh.NewGroup(
		huh.NewInput().
			Title("Server URL").
			Description("The codecheck service to talk to").
			Placeholder(config.DefaultServerURL).
			Validate(validateServerURL).
			Value(&v.ServerURL),
		huh.NewInput().
			Title("Session cookie").
			Description("Copy the value of the session cookie after signing in with a browser").
			EchoMode(huh.EchoModePassword).
			Value(&v.SessionCookie),
	)

	local := huh.NewGroup(
		huh.NewInput().
			Title("Download directory").
			Description("report.md is written here").
			Value(&v.DownloadDir),
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&v.Theme),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)+1).
			Value(&v.Options),
	)

	return huh.NewForm(server, local).WithTheme(ui.FormTheme())
}

func runConfigure(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	if theme := cfg.GetTheme(); theme != "" {
		ui.SetThemeByName(theme)
	}

	values := valuesFromConfig(cfg)
	if err := newConfigureForm(&values).Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, nothing saved.")
			return nil
		}
		return err
	}

	values.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", cfg.Path())
	return nil
}
