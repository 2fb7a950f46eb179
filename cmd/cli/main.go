package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sajidddd11/telegramtodo/config"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

// cliEnv is shared by every subcommand once the root pre-run has loaded it.
type cliEnv struct {
	cfg    *config.Config
	logger log.Logger

	userID  string
	dbPath  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	env := &cliEnv{}

	root := &cobra.Command{
		Use:   "todo",
		Short: "TodoBot command line",
		Long: `Talk to the todo assistant from a terminal, mint development tokens
and prepare the sqlite store.

Configuration is read from config.yaml and the environment, like the API server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if env.dbPath != "" {
				cfg.Store.Driver = config.StoreDriverSQLite
				cfg.Store.SQLitePath = env.dbPath
			}
			env.cfg = cfg

			level := "error"
			if env.verbose {
				level = "debug"
			}
			env.logger = log.Init(log.ZapConfig{
				Level:    level,
				Mode:     cfg.Logger.Mode,
				Encoding: "console",
			})
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&env.userID, "user", "u", defaultUserID, "User id the todos belong to")
	root.PersistentFlags().StringVar(&env.dbPath, "db", "", "sqlite file to use instead of the configured store")
	root.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newChatCmd(env))
	root.AddCommand(newAskCmd(env))
	root.AddCommand(newTokenCmd(env))
	root.AddCommand(newMigrateCmd(env))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
