package seeders

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"admin-request-engine/internal/dto"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/internal/services"
	"admin-request-engine/pkg/validation"
)

// SeedRequests создает демо-заявки в одной транзакции: либо все, либо ничего.
func SeedRequests(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) (int, error) {
	var created int
	err := repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		repo := repositories.NewRequestRepository(tx, logger)
		n, err := SeedRequestsInto(ctx, repo, time.Now(), logger)
		created = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// SeedRequestsInto проводит демо-заявки через жизненный цикл, так что
// в хранилище попадают только допустимые состояния.
func SeedRequestsInto(ctx context.Context, repo repositories.RequestRepositoryInterface, now time.Time, logger *zap.Logger) (int, error) {
	lifecycle := services.NewLifecycleService(repo, validation.New(), logger, nil)

	for i, d := range demoRequests {
		createDTO := dto.CreateRequestDTO{
			RequesterID:     d.RequesterID,
			Description:     d.Description,
			Type:            d.Type,
			Priority:        d.Priority,
			BudgetRequested: d.budget(),
		}
		if d.DueInDays > 0 {
			createDTO.DateNeeded = null.TimeFrom(now.AddDate(0, 0, d.DueInDays))
		}

		request, err := lifecycle.CreateRequest(ctx, createDTO)
		if err != nil {
			return i, fmt.Errorf("демо-заявка #%d: %w", i+1, err)
		}
		for _, status := range d.Path {
			if _, err := lifecycle.Transition(ctx, request.ID, status); err != nil {
				return i, fmt.Errorf("демо-заявка #%d -> %s: %w", i+1, status, err)
			}
		}
		logger.Debug("  - демо-заявка создана", zap.Uint64("id", request.ID), zap.String("type", string(d.Type)))
	}
	return len(demoRequests), nil
}
