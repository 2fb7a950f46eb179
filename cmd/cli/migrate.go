package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sajidddd11/telegramtodo/config"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository/sqlite"
)

func newMigrateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the sqlite schema",
		Long: `Creates the todos and telegram link tables in the configured sqlite file.
Running it again is harmless. PostgREST stores are migrated on the database side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.cfg.Store.Driver != config.StoreDriverSQLite {
				return fmt.Errorf("migrate: store driver %q is not sqlite", env.cfg.Store.Driver)
			}

			db, err := sqlite.Open(cmd.Context(), env.cfg.Store.SQLitePath)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "schema applied to %s\n", env.cfg.Store.SQLitePath)
			return nil
		},
	}
}
