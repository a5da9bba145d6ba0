package cli

import (
	"fmt"

	"bible-quiz-service/internal/app"
	"bible-quiz-service/internal/config"
	pgstore "bible-quiz-service/internal/infra/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSeedCmd inserts the built-in sample catalog into Postgres. Memory-mode
// deployments seed themselves at startup and don't need this.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the sample question catalog into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if err := runMigrationsWithConfig(ctx, cfg); err != nil {
				return err
			}

			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			questions := app.SampleCatalog()
			for i := range questions {
				questions[i].ID = uuid.NewString()
			}
			if err := pgstore.NewCatalogStore(pool).AppendQuestions(ctx, questions); err != nil {
				return err
			}
			logrus.WithField("count", len(questions)).Info("sample questions seeded")
			return nil
		},
	}
}
