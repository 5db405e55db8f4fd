package cli

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/warehouse-fulfillment/internal/infrastructure/postgres"
)

// NewSeedCommand carga productos, bodegas y órdenes de demostración.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Cargar datos de demostración",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				if migrate {
					if _, err := postgres.Migrate(cmd.Context(), pool); err != nil {
						return err
					}
				}
				if err := postgres.SeedDemo(cmd.Context(), pool); err != nil {
					return err
				}
				opts.log.Info().Msg("datos de demostración cargados")
				fmt.Fprintln(cmd.OutOrStdout(), "seed completado")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "aplicar migraciones antes de cargar los datos")

	return cmd
}
