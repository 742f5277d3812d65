package submissionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating submissions table...")

		if _, err := db.NewCreateTable().Model((*submissiondb.Submission)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// One submission per participant per game.
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_submissions_game_user ON submissions (game_id, user_id)").Exec(ctx); err != nil {
			return err
		}
		// The aggregator's read path: approved submissions by event.
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_submissions_event_status ON submissions (event_id, status)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Submissions table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping submissions table...")

		if _, err := db.NewDropTable().Model((*submissiondb.Submission)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Submissions table dropped successfully!")
		return nil
	})
}
