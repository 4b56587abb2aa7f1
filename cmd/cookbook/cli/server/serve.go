package server

import (
	"fmt"

	"github.com/mwantia/cookbook/internal/agent"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	config "github.com/mwantia/cookbook/internal/config/server"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Cookbook API server",
		Long: `Start the Cookbook API server.

The server connects to the configured database, optionally applies pending
migrations and serves the REST API until it receives SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			return agent.NewAgent(cfg).Serve(cmd.Context())
		},
	}

	cmd.Flags().Int("port", 8080, "port to listen on")
	cmd.Flags().Bool("migrate", false, "apply pending migrations before serving")

	viper.BindPFlag("http.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("database.auto_migrate", cmd.Flags().Lookup("migrate"))

	return cmd
}
