package cmd

import (
	"errors"
	"fmt"

	"movie-feedback/pkg/database"
	"movie-feedback/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cc.config.Database.Driver != utils.DriverPostgres {
				return errors.New("migrate requires DB_DRIVER=postgres")
			}

			db, err := database.InitDB(cmd.Context(), cc.config.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			applied, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}

			cc.log.Info("Migrations applied", zap.Strings("versions", applied))
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Schema up to date")
				return nil
			}
			for _, version := range applied {
				fmt.Fprintf(out, "applied %s\n", version)
			}
			return nil
		},
	}
}
