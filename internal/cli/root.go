// Package cli implementa warehousectl, la herramienta de operación del servicio.
package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/warehouse-fulfillment/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-fulfillment/pkg/config"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

// Connector abre el pool de conexiones a partir de la configuración.
type Connector func(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error)

// RootOptions estado compartido por los subcomandos.
type RootOptions struct {
	Verbose bool

	Connect Connector
	cfg     *config.Config
	log     *logger.Logger
}

// NewRootCommand crea el comando raíz. connect nil usa postgres.NewPool.
func NewRootCommand(connect Connector) *cobra.Command {
	if connect == nil {
		connect = postgres.NewPool
	}
	opts := &RootOptions{Connect: connect}

	cmd := &cobra.Command{
		Use:   "warehousectl",
		Short: "Operación del servicio de despacho de bodega",
		Long:  "Aplica las migraciones del esquema y carga datos de demostración.",
		// main imprime el error
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			level := cfg.Log.Level
			if opts.Verbose {
				level = "debug"
			}
			opts.cfg = cfg
			opts.log = logger.New(logger.Config{
				Env:    cfg.App.Env,
				Level:  level,
				Output: cmd.ErrOrStderr(),
			}).Component("warehousectl")
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log de depuración")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// withPool abre el pool, ejecuta fn y lo cierra.
func (o *RootOptions) withPool(ctx context.Context, fn func(pool *pgxpool.Pool) error) error {
	pool, err := o.Connect(ctx, o.cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	return fn(pool)
}
