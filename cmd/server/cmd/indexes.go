package cmd

import (
	"context"
	"fmt"
	"time"

	"clubsphere_backend/internal/database"
	"clubsphere_backend/pkg/utils"

	"github.com/spf13/cobra"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		db, err := database.Connect(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		if err := db.EnsureIndexes(ctx); err != nil {
			return err
		}
		utils.LogInfo("Indexes ensured", map[string]interface{}{"database": cfg.Mongo.DatabaseName})
		return nil
	},
}
