package scheduler

import (
	"context"
	"errors"
	"time"

	"backend/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrUnknownTask = errors.New("task not found")

type Task struct {
	Name        string                          `json:"name"`
	Description string                          `json:"description"`
	Schedule    string                          `json:"schedule"`
	Enabled     bool                            `json:"enabled"`
	Handler     func(ctx context.Context) error `json:"-"`
}

func MaintenanceTasks(DB *gorm.DB, log *zap.Logger) []Task {
	return []Task{
		{
			Name:        "prune_login_sessions",
			Description: "Remove expired login sessions",
			Schedule:    "0 * * * *",
			Enabled:     true,
			Handler: func(ctx context.Context) error {
				pruned, err := database.PruneExpiredLoginSessions(DB.WithContext(ctx), time.Now())
				if err != nil {
					return err
				}
				log.Info("pruned expired login sessions", zap.Int64("count", pruned))
				return nil
			},
		},
	}
}
