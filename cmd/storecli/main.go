package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"retailWarehouse/internal/auth"
	"retailWarehouse/internal/config"
	"retailWarehouse/internal/console"
	"retailWarehouse/internal/db"
	"retailWarehouse/internal/logging"
	"retailWarehouse/internal/service"
)

const greeting = `

*******************************************************
              Welcome to the Amazon WareHouse
*******************************************************
`

// errReported marks failures whose message the user has already seen.
var errReported = errors.New("already reported")

func main() {
	os.Exit(execute(newRootCmd(os.Stdin, os.Stdout), os.Stderr))
}

// execute runs cmd and prints its error once.
func execute(cmd *cobra.Command, errOut io.Writer) int {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storecli <dbname> <port> <username>",
		Short: "Interactive console for the retail warehouse database",
		Args:          cobra.ExactArgs(3),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), args[0], args[1], args[2], in, out, cmd.ErrOrStderr())
		},
	}
	cmd.SetOut(out)
	return cmd
}

func run(ctx context.Context, dbName, port, user string, in io.Reader, out, errOut io.Writer) error {
	// A missing .env file is fine; the environment and defaults still apply.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyArgs(dbName, port, user)
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		slog.Warn("load .env", "error", envErr)
	}
	slog.Debug("configuration loaded", "config", cfg.String())

	fmt.Fprint(out, greeting)

	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}
	opts := db.Options{
		Dialect:  dialect,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Name:     cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		Path:     cfg.Database.Path,
		Timeout:  cfg.Database.QueryTimeout,
	}
	fmt.Fprint(out, "Connecting to database...")
	conn, err := db.Open(ctx, opts)
	if err != nil {
		fmt.Fprintln(out)
		fmt.Fprintf(errOut, "Error - Unable to Connect to Database: %v\n", err)
		fmt.Fprintln(out, "Make sure you started postgres on this machine")
		return fmt.Errorf("%w: %w", errReported, err)
	}
	fmt.Fprintf(out, "Connection URL: %s\n\nDone\n", opts.Target())
	slog.Info("connected to database", "dialect", conn.Dialect().String())

	defer func() {
		fmt.Fprint(out, "Disconnecting from database...")
		conn.Close()
		fmt.Fprintln(out, "Done\n\nBye !")
	}()

	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	svc := service.New(conn, tokens, cfg.Store)
	if err := console.NewRouter(svc, in, out).Run(ctx); err != nil {
		slog.Error("console stopped", "error", err)
		return err
	}
	return nil
}
