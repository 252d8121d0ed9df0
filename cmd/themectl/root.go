// Command themectl inspects and switches the admin theme from the shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"shorty/internal/config"
	"shorty/internal/db"
	"shorty/internal/db/mock"
	"shorty/internal/extensions"
	"shorty/internal/i18n"
	applog "shorty/internal/log"
	"shorty/internal/options"
	"shorty/internal/theme"
)

var (
	globalOpts struct {
		verbose bool
		dir     string
	}

	cfg     config.Config
	manager *theme.Manager
	printer *i18n.Printer

	// openDatabase connects to the configured database.
	openDatabase = func(ctx context.Context, c config.DatabaseConfig) (*gorm.DB, error) {
		if c.UseMock {
			return mock.New(ctx)
		}
		return db.Configure(c)
	}
)

var rootCmd = &cobra.Command{
	Use:   "themectl",
	Short: "Manage shorty admin themes",
	Long: `themectl lists the themes installed in the themes directory and
switches the active one. It reads the same environment as the server
(DATABASE_URL, THEMES_DIR, APP_LANGUAGE, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if globalOpts.verbose {
			level = "debug"
		}
		if err := applog.SetLevel(level); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalOpts.dir != "" {
			cfg.Themes.Dir = globalOpts.dir
		}

		database, err := openDatabase(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		exts := theme.NewExtensionRegistry()
		extensions.Register(exts)
		manager = theme.NewManager(theme.Config{
			Dir:     cfg.Themes.Dir,
			URL:     cfg.Themes.URL,
			SiteURL: cfg.Site.URL,
			Version: cfg.Site.Version,
		}, options.New(database), nil, nil, exts)
		printer = i18n.Default().Printer(cfg.Site.Language)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.dir, "dir", "",
		"Themes directory (default: THEMES_DIR or user/themes)")
}

func newState() *theme.State {
	return manager.NewState(printer)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
