package persistence

import (
	"context"
	"errors"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/infrastructure/persistence/models"
	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/repo"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const requestColumns = `id, title, description, type, priority, status, requester_id,
	department_id, cancel_reason, created_at, updated_at, completed_at`

type RequestRepository struct{}

func NewRequestRepository() request.Repository {
	return &RequestRepository{}
}

func (r *RequestRepository) GetPaginated(ctx context.Context, params *request.FindParams) ([]request.Request, int64, error) {
	if params == nil {
		params = &request.FindParams{}
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildFilters(params)

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	sortColumn := string(request.SortCreatedAt)
	switch params.SortBy {
	case request.SortCreatedAt, request.SortUpdatedAt, request.SortPriority, request.SortStatus:
		sortColumn = string(params.SortBy)
	}
	direction := "DESC"
	if params.Ascending {
		direction = "ASC"
	}

	query := repo.Join(
		fmt.Sprintf("SELECT %s FROM requests r", requestColumns),
		where,
		repo.OrderBy("r."+sortColumn, direction),
		repo.FormatLimitOffset(limit, offset),
	)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list requests")
	}
	envelopes, err := scanRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := repo.Join("SELECT COUNT(*) FROM requests r", where)
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "count requests")
	}

	out := make([]request.Request, 0, len(envelopes))
	for _, row := range envelopes {
		detail, err := r.loadDetail(ctx, tx, request.Type(row.Type), row.ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, toDomainRequest(row, detail))
	}
	return out, total, nil
}

func buildFilters(params *request.FindParams) (string, []any) {
	var parts []string
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		parts = append(parts, fmt.Sprintf(clause, len(args)))
	}

	if params.Status != "" {
		add("r.status = $%d", string(params.Status))
	}
	if params.Type != "" {
		add("r.type = $%d", string(params.Type))
	}
	if params.RequesterID != "" {
		add("r.requester_id = $%d", params.RequesterID)
	}
	if params.DepartmentID != "" {
		add("r.department_id = $%d", params.DepartmentID)
	}
	if params.AssigneeID != "" {
		add("EXISTS (SELECT 1 FROM job_requests j WHERE j.request_id = r.id AND j.assignee_id = $%d)", params.AssigneeID)
	}
	if params.CreatedFrom != nil {
		add("r.created_at >= $%d", *params.CreatedFrom)
	}
	if params.CreatedTo != nil {
		add("r.created_at < $%d", *params.CreatedTo)
	}

	if len(parts) == 0 {
		return "", nil
	}
	where := "WHERE " + parts[0]
	for _, p := range parts[1:] {
		where += " AND " + p
	}
	return where, args
}

func scanRequests(rows pgx.Rows) ([]models.Request, error) {
	defer rows.Close()
	var out []models.Request
	for rows.Next() {
		var row models.Request
		if err := rows.Scan(
			&row.ID, &row.Title, &row.Description, &row.Type, &row.Priority,
			&row.Status, &row.RequesterID, &row.DepartmentID, &row.CancelReason,
			&row.CreatedAt, &row.UpdatedAt, &row.CompletedAt,
		); err != nil {
			return nil, gerrors.Wrap(err, "scan request")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}

	query := fmt.Sprintf("SELECT %s FROM requests WHERE id = $1", requestColumns)
	var row models.Request
	err = tx.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Title, &row.Description, &row.Type, &row.Priority,
		&row.Status, &row.RequesterID, &row.DepartmentID, &row.CancelReason,
		&row.CreatedAt, &row.UpdatedAt, &row.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrNotFound
		}
		return request.Request{}, gerrors.Wrap(err, "get request")
	}

	detail, err := r.loadDetail(ctx, tx, request.Type(row.Type), row.ID)
	if err != nil {
		return request.Request{}, err
	}
	return toDomainRequest(row, detail), nil
}

func (r *RequestRepository) Create(ctx context.Context, entity request.Request) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}

	query := `INSERT INTO requests (
		id, title, description, type, priority, status, requester_id, department_id, cancel_reason
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at`

	var row models.Request
	row.ID = entity.ID()
	err = tx.QueryRow(ctx, query,
		entity.ID(), entity.Title(), entity.Description(), string(entity.Type()),
		string(entity.Priority()), string(entity.Status()), entity.RequesterID(),
		entity.DepartmentID(), nilIfEmpty(entity.CancelReason()),
	).Scan(&row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return request.Request{}, mapWriteError(err, "create request")
	}

	if err := r.insertDetail(ctx, tx, entity); err != nil {
		return request.Request{}, err
	}

	return request.Hydrate(
		entity.ID(), entity.Title(), entity.Description(), entity.Type(),
		entity.Priority(), entity.Status(), entity.RequesterID(), entity.DepartmentID(),
		entity.CancelReason(), entity.Detail(), row.CreatedAt, row.UpdatedAt, nil,
	), nil
}

func (r *RequestRepository) Update(ctx context.Context, entity request.Request) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}

	query := `UPDATE requests SET
		title = $2, description = $3, priority = $4, status = $5,
		cancel_reason = $6, completed_at = $7, updated_at = now()
	WHERE id = $1
	RETURNING created_at, updated_at`

	var row models.Request
	err = tx.QueryRow(ctx, query,
		entity.ID(), entity.Title(), entity.Description(), string(entity.Priority()),
		string(entity.Status()), nilIfEmpty(entity.CancelReason()), entity.CompletedAt(),
	).Scan(&row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrNotFound
		}
		return request.Request{}, mapWriteError(err, "update request")
	}

	if err := r.updateDetail(ctx, tx, entity); err != nil {
		return request.Request{}, err
	}

	return request.Hydrate(
		entity.ID(), entity.Title(), entity.Description(), entity.Type(),
		entity.Priority(), entity.Status(), entity.RequesterID(), entity.DepartmentID(),
		entity.CancelReason(), entity.Detail(), row.CreatedAt, row.UpdatedAt, entity.CompletedAt(),
	), nil
}

func (r *RequestRepository) insertDetail(ctx context.Context, tx repo.Tx, entity request.Request) error {
	var err error
	switch d := entity.Detail().(type) {
	case request.JobDetail:
		_, err = tx.Exec(ctx, `INSERT INTO job_requests (
			id, request_id, job_type, description, due_date, start_date, end_date,
			assignee_id, reviewer_id, approver_id, rejection_count, verified,
			cost_estimate, actual_cost
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			d.ID, entity.ID(), d.JobType, d.Description, d.DueDate, d.StartDate, d.EndDate,
			nilIfEmpty(d.AssigneeID), nilIfEmpty(d.ReviewerID), nilIfEmpty(d.ApproverID),
			d.RejectionCount, d.Verified, d.CostEstimate, d.ActualCost,
		)
	case request.VenueDetail:
		_, err = tx.Exec(ctx, `INSERT INTO venue_requests (
			id, request_id, venue_id, event_date, start_time, end_time, expected_attendees, purpose
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, entity.ID(), d.VenueID, d.EventDate, d.StartTime, d.EndTime, d.ExpectedAttendees, d.Purpose,
		)
	case request.TransportDetail:
		_, err = tx.Exec(ctx, `INSERT INTO transport_requests (
			id, request_id, vehicle_id, travel_date, destination, passenger_count, purpose, driver_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, entity.ID(), d.VehicleID, d.TravelDate, d.Destination, d.PassengerCount, d.Purpose, nilIfEmpty(d.DriverID),
		)
	case request.BorrowDetail:
		_, err = tx.Exec(ctx, `INSERT INTO borrow_requests (
			id, request_id, item_id, quantity, borrow_date, return_date, purpose, returned_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, entity.ID(), d.ItemID, d.Quantity, d.BorrowDate, d.ReturnDate, d.Purpose, d.ReturnedAt,
		)
	case request.SupplyDetail:
		_, err = tx.Exec(ctx, `INSERT INTO supply_requests (
			id, request_id, item_id, quantity, needed_by, purpose
		) VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, entity.ID(), d.ItemID, d.Quantity, d.NeededBy, d.Purpose,
		)
	default:
		return gerrors.Wrapf(request.ErrDetailMismatch, "type %s", entity.Type())
	}
	if err != nil {
		return mapWriteError(err, "create request detail")
	}
	return nil
}

func (r *RequestRepository) updateDetail(ctx context.Context, tx repo.Tx, entity request.Request) error {
	var err error
	switch d := entity.Detail().(type) {
	case request.JobDetail:
		_, err = tx.Exec(ctx, `UPDATE job_requests SET
			job_type = $2, description = $3, due_date = $4, start_date = $5, end_date = $6,
			assignee_id = $7, reviewer_id = $8, approver_id = $9, rejection_count = $10,
			verified = $11, cost_estimate = $12, actual_cost = $13
		WHERE id = $1`,
			d.ID, d.JobType, d.Description, d.DueDate, d.StartDate, d.EndDate,
			nilIfEmpty(d.AssigneeID), nilIfEmpty(d.ReviewerID), nilIfEmpty(d.ApproverID),
			d.RejectionCount, d.Verified, d.CostEstimate, d.ActualCost,
		)
	case request.VenueDetail:
		_, err = tx.Exec(ctx, `UPDATE venue_requests SET
			venue_id = $2, event_date = $3, start_time = $4, end_time = $5,
			expected_attendees = $6, purpose = $7
		WHERE id = $1`,
			d.ID, d.VenueID, d.EventDate, d.StartTime, d.EndTime, d.ExpectedAttendees, d.Purpose,
		)
	case request.TransportDetail:
		_, err = tx.Exec(ctx, `UPDATE transport_requests SET
			vehicle_id = $2, travel_date = $3, destination = $4, passenger_count = $5,
			purpose = $6, driver_id = $7
		WHERE id = $1`,
			d.ID, d.VehicleID, d.TravelDate, d.Destination, d.PassengerCount, d.Purpose, nilIfEmpty(d.DriverID),
		)
	case request.BorrowDetail:
		_, err = tx.Exec(ctx, `UPDATE borrow_requests SET
			item_id = $2, quantity = $3, borrow_date = $4, return_date = $5,
			purpose = $6, returned_at = $7
		WHERE id = $1`,
			d.ID, d.ItemID, d.Quantity, d.BorrowDate, d.ReturnDate, d.Purpose, d.ReturnedAt,
		)
	case request.SupplyDetail:
		_, err = tx.Exec(ctx, `UPDATE supply_requests SET
			item_id = $2, quantity = $3, needed_by = $4, purpose = $5
		WHERE id = $1`,
			d.ID, d.ItemID, d.Quantity, d.NeededBy, d.Purpose,
		)
	default:
		return gerrors.Wrapf(request.ErrDetailMismatch, "type %s", entity.Type())
	}
	if err != nil {
		return mapWriteError(err, "update request detail")
	}
	return nil
}

func (r *RequestRepository) loadDetail(ctx context.Context, tx repo.Tx, typ request.Type, requestID string) (request.Detail, error) {
	switch typ {
	case request.TypeJob:
		var row models.JobRequest
		err := tx.QueryRow(ctx, `SELECT id, request_id, job_type, description, due_date, start_date,
			end_date, assignee_id, reviewer_id, approver_id, rejection_count, verified,
			cost_estimate, actual_cost
		FROM job_requests WHERE request_id = $1`, requestID).Scan(
			&row.ID, &row.RequestID, &row.JobType, &row.Description, &row.DueDate, &row.StartDate,
			&row.EndDate, &row.AssigneeID, &row.ReviewerID, &row.ApproverID, &row.RejectionCount,
			&row.Verified, &row.CostEstimate, &row.ActualCost,
		)
		if err != nil {
			return nil, mapDetailError(err)
		}
		return toDomainJob(row), nil
	case request.TypeVenue:
		var row models.VenueRequest
		err := tx.QueryRow(ctx, `SELECT id, request_id, venue_id, event_date, start_time, end_time,
			expected_attendees, purpose
		FROM venue_requests WHERE request_id = $1`, requestID).Scan(
			&row.ID, &row.RequestID, &row.VenueID, &row.EventDate, &row.StartTime, &row.EndTime,
			&row.ExpectedAttendees, &row.Purpose,
		)
		if err != nil {
			return nil, mapDetailError(err)
		}
		return toDomainVenue(row), nil
	case request.TypeTransport:
		var row models.TransportRequest
		err := tx.QueryRow(ctx, `SELECT id, request_id, vehicle_id, travel_date, destination,
			passenger_count, purpose, driver_id
		FROM transport_requests WHERE request_id = $1`, requestID).Scan(
			&row.ID, &row.RequestID, &row.VehicleID, &row.TravelDate, &row.Destination,
			&row.PassengerCount, &row.Purpose, &row.DriverID,
		)
		if err != nil {
			return nil, mapDetailError(err)
		}
		return toDomainTransport(row), nil
	case request.TypeReturnable:
		var row models.BorrowRequest
		err := tx.QueryRow(ctx, `SELECT id, request_id, item_id, quantity, borrow_date, return_date,
			purpose, returned_at
		FROM borrow_requests WHERE request_id = $1`, requestID).Scan(
			&row.ID, &row.RequestID, &row.ItemID, &row.Quantity, &row.BorrowDate, &row.ReturnDate,
			&row.Purpose, &row.ReturnedAt,
		)
		if err != nil {
			return nil, mapDetailError(err)
		}
		return toDomainBorrow(row), nil
	case request.TypeSupply:
		var row models.SupplyRequest
		err := tx.QueryRow(ctx, `SELECT id, request_id, item_id, quantity, needed_by, purpose
		FROM supply_requests WHERE request_id = $1`, requestID).Scan(
			&row.ID, &row.RequestID, &row.ItemID, &row.Quantity, &row.NeededBy, &row.Purpose,
		)
		if err != nil {
			return nil, mapDetailError(err)
		}
		return toDomainSupply(row), nil
	default:
		return nil, gerrors.Wrapf(request.ErrDetailMismatch, "unknown type %s", typ)
	}
}

func mapDetailError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return gerrors.Wrap(request.ErrNotFound, "detail row missing")
	}
	return gerrors.Wrap(err, "load request detail")
}

func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return gerrors.Wrap(request.ErrIDConflict, op)
		case pgForeignKeyViolation:
			return gerrors.Wrap(request.ErrDependency, op)
		}
	}
	return gerrors.Wrap(err, op)
}
