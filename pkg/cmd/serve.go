package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drivevault/drivevault/pkg/api"
	"github.com/drivevault/drivevault/pkg/app"
	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/storage/db"
	"github.com/drivevault/drivevault/pkg/log"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.NewApp(configPath)
			api.RegisterRoutes(a.Engine)

			return a.Run()
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			log.Init()

			client, err := db.New(context.Background())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}

			if err := client.GetDB().AutoMigrate(model.All()...); err != nil {
				return fmt.Errorf("failed to migrate schema: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")

			return nil
		},
	}
)

// registerServeCommands registers the server lifecycle commands.
func registerServeCommands() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
