package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"blogapi/app/config"
	"blogapi/app/repositories"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

// Version is reported by the version command.
const Version = "1.0.0"

// NewRootCmd builds the blogapi command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogapi",
		Short: "Blog post comment API",
		Long: heredoc.Doc(`
			blogapi serves a JSON API for blog posts and their comments.

			Settings come from a .env file and BLOG_* environment variables.
		`),
		Example: heredoc.Doc(`
			$ blogapi serve
			$ BLOG_STORE=postgres BLOG_DATABASE_URL=postgres://localhost/blog blogapi serve
			$ blogapi --env-file prod.env backup
		`),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("env-file", ".env", "Environment file to load before the process environment")

	cmd.AddCommand(
		serveCmd(),
		initCmd(),
		cleanCmd(),
		backupCmd(),
		restoreCmd(),
		versionCmd(),
	)
	return cmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return config.Config{}, fmt.Errorf("getting env-file flag value: %w", err)
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunAppServer(ctx, cfg, cfg.NewLogger())
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch cfg.Store {
			case config.StoreBadger:
				return initDB(out, cfg.BadgerPath)
			case config.StorePostgres:
				s, err := repositories.OpenPostgres(cfg.DatabaseURL, cfg.NewLogger())
				if err != nil {
					return err
				}
				defer s.Close()
				if err := s.Migrate(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Database schema migrated successfully")
				return nil
			default:
				return fmt.Errorf("the %s store has nothing to initialize", cfg.Store)
			}
		},
	}
}

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the badger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := badgerConfig(cmd)
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			return cleanDB(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.BadgerPath, yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the badger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := badgerConfig(cmd)
			if err != nil {
				return err
			}
			_, err = backupDB(cmd.OutOrStdout(), cfg.BadgerPath, cfg.BackupDir)
			return err
		},
	}
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the badger database from a backup",
		Example: heredoc.Doc(`
			$ blogapi restore data/backups/backup_1700000000000000000.db
			$ blogapi restore --yes data/backups/backup_1700000000000000000.db
		`),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := badgerConfig(cmd)
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			return restoreDB(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.BadgerPath, args[0], yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Replace an existing database without asking")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogapi version %s\n", Version)
		},
	}
}

func badgerConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, err
	}
	if cfg.Store != config.StoreBadger {
		return cfg, fmt.Errorf("%s only works with the %s store, not %s", cmd.Name(), config.StoreBadger, cfg.Store)
	}
	return cfg, nil
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initDB creates a new empty database.
func initDB(out io.Writer, dbPath string) error {
	if exists(dbPath) {
		return errors.New("database already exists, run clean first to reinitialize")
	}
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := repositories.OpenBadger(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	fmt.Fprintln(out, "Database initialized successfully")
	return nil
}

// cleanDB removes the database.
func cleanDB(in io.Reader, out io.Writer, dbPath string, yes bool) error {
	if !exists(dbPath) {
		fmt.Fprintln(out, "Database is already clean (does not exist)")
		return nil
	}

	if !yes && !confirm(in, out, "Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}

	if err := os.RemoveAll(dbPath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(out, "Database cleaned successfully")
	return nil
}

// backupDB writes a full backup of the database into backupDir and returns
// the file name.
func backupDB(out io.Writer, dbPath, backupDir string) (string, error) {
	if !exists(dbPath) {
		return "", errors.New("no database exists to backup")
	}
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := repositories.OpenBadger(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush backup file: %w", err)
	}

	fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
	return backupFile, nil
}

// restoreDB replaces the database with the contents of backupFile.
func restoreDB(in io.Reader, out io.Writer, dbPath, backupFile string, yes bool) error {
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if exists(dbPath) {
		if !yes && !confirm(in, out, "Existing database found. Do you want to replace it?") {
			fmt.Fprintln(out, "Operation cancelled")
			return nil
		}
		if err := os.RemoveAll(dbPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	db, err := repositories.OpenBadger(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Load(f, 256); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}

	fmt.Fprintln(out, "Database restored successfully")
	return nil
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
