package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/app/config"
	"portfolio/app/logging"
	"portfolio/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Personal portfolio and blog server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.serveCmd(),
		c.buildCheckCmd(),
		c.dbCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) init() error {
	cfg, used, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, c.verbose)
	if err != nil {
		return err
	}
	if used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	var (
		addr       string
		contentDir string
		inMemory   bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the content directory and serve the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				c.cfg.Addr = addr
			}
			if flags.Changed("content") {
				c.cfg.ContentDir = contentDir
			}
			if flags.Changed("in-memory") {
				c.cfg.InMemory = inMemory
			}
			if flags.Changed("watch") {
				c.cfg.Watch = watch
			}

			app, err := service.NewApp(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&contentDir, "content", "", "content directory (overrides config)")
	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "keep the post index in memory")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload content when files change")
	return cmd
}

func (c *cli) buildCheckCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "build-check",
		Short: "Load and validate every post without serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := service.BuildCheck(cmd.Context(), c.cfg.ContentDir, c.logger)
			if err != nil {
				return err
			}
			return service.WriteSummary(cmd.OutOrStdout(), summary, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	return cmd
}

func (c *cli) dbCmd() *cobra.Command {
	db := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}

	var backupDir string
	backup := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := service.Backup(c.cfg.DataDir, backupDir, c.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", file)
			return nil
		},
	}
	backup.Flags().StringVarP(&backupDir, "out", "o", "data/backups", "backup directory")

	var force bool
	restore := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := service.Restore(c.cfg.DataDir, args[0], force, cmd.InOrStdin(), cmd.OutOrStdout(), c.logger)
			if errors.Is(err, service.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database restored successfully")
			return nil
		},
	}
	restore.Flags().BoolVar(&force, "force", false, "replace an existing database without asking")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show how many posts are stored and when they were last synced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := service.Status(c.cfg.DataDir, c.logger)
			if err != nil {
				return err
			}
			synced := "never"
			if !st.SyncedAt.IsZero() {
				synced = st.SyncedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posts: %d\nlast sync: %s\n", st.Posts, synced)
			return nil
		},
	}

	db.AddCommand(backup, restore, status)
	return db
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio version %s\n", cliVersion)
		},
	}
}
