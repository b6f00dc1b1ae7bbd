package commands

import (
	"fmt"

	"storefront/internal/infra/persistence/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the storefront schema",
		Long: `Create or update every storefront table, the cascading foreign keys
and the partial unique index on active cart lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, closeDB, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema migrated")

			return nil
		},
	}
}
