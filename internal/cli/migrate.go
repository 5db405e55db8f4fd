package cli

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/warehouse-fulfillment/internal/infrastructure/postgres"
)

// NewMigrateCommand aplica las migraciones embebidas pendientes.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Aplicar migraciones del esquema",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				applied, err := postgres.Migrate(cmd.Context(), pool)
				if err != nil {
					return err
				}
				opts.log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "esquema al día")
					return nil
				}
				for _, name := range applied {
					fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
				}
				return nil
			})
		},
	}
}
