package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"admin-request-engine/internal/entities"
	"admin-request-engine/pkg/constants"
	apperrors "admin-request-engine/pkg/errors"
)

const requestTable = "requests"

var requestColumns = []string{
	"id", "requester_id", "description", "type", "priority", "status",
	"budget_requested", "date_needed", "processed_at", "created_at",
}

type dbRequest struct {
	ID              uint64
	RequesterID     uint64
	Description     string
	Type            string
	Priority        string
	Status          string
	BudgetRequested decimal.NullDecimal
	DateNeeded      sql.NullTime
	ProcessedAt     sql.NullTime
	CreatedAt       time.Time
}

func (db *dbRequest) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.RequesterID, &db.Description, &db.Type, &db.Priority, &db.Status,
		&db.BudgetRequested, &db.DateNeeded, &db.ProcessedAt, &db.CreatedAt,
	}
}

func (db *dbRequest) toEntity() entities.Request {
	r := entities.Request{
		ID:              db.ID,
		RequesterID:     db.RequesterID,
		Description:     db.Description,
		Type:            constants.RequestType(db.Type),
		Priority:        constants.RequestPriority(db.Priority),
		Status:          constants.RequestStatus(db.Status),
		BudgetRequested: db.BudgetRequested,
		CreatedAt:       db.CreatedAt,
	}
	if db.DateNeeded.Valid {
		t := db.DateNeeded.Time
		r.DateNeeded = &t
	}
	if db.ProcessedAt.Valid {
		t := db.ProcessedAt.Time
		r.ProcessedAt = &t
	}
	return r
}

// RequestRepository - хранилище заявок в PostgreSQL.
type RequestRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewRequestRepository(storage querier, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func (r *RequestRepository) Put(ctx context.Context, request *entities.Request) error {
	query, args, err := sq.Insert(requestTable).
		Columns("requester_id", "description", "type", "priority", "status",
			"budget_requested", "date_needed", "processed_at", "created_at").
		Values(request.RequesterID, request.Description, string(request.Type), string(request.Priority),
			string(request.Status), request.BudgetRequested, request.DateNeeded, request.ProcessedAt, request.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("сборка INSERT для заявки: %w", err)
	}

	if err := r.storage.QueryRow(ctx, query, args...).Scan(&request.ID); err != nil {
		r.logger.Error("Не удалось сохранить заявку", zap.Error(err))
		return fmt.Errorf("вставка заявки: %w", err)
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uint64) (*entities.Request, error) {
	query, args, err := sq.Select(requestColumns...).
		From(requestTable).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка SELECT заявки: %w", err)
	}

	var dbRow dbRequest
	if err := r.storage.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("чтение заявки %d: %w", id, err)
	}
	request := dbRow.toEntity()
	return &request, nil
}

func (r *RequestRepository) Scan(ctx context.Context, filter RequestFilter) ([]entities.Request, error) {
	builder := sq.Select(requestColumns...).From(requestTable).OrderBy("id")
	if conds := filter.ToSqlizer(); len(conds) > 0 {
		builder = builder.Where(conds)
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка SELECT списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("выборка заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.Request, 0)
	for rows.Next() {
		var dbRow dbRequest
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, fmt.Errorf("чтение строки заявки: %w", err)
		}
		requests = append(requests, dbRow.toEntity())
	}
	return requests, rows.Err()
}

func (r *RequestRepository) CompareAndUpdateStatus(ctx context.Context, id uint64, expected, next constants.RequestStatus, processedAt *time.Time) (bool, error) {
	builder := sq.Update(requestTable).
		Set("status", string(next)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "status": string(expected)})
	if processedAt != nil {
		builder = builder.Set("processed_at", *processedAt)
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return false, fmt.Errorf("сборка UPDATE статуса: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("обновление статуса заявки %d: %w", id, err)
	}
	return result.RowsAffected() == 1, nil
}
