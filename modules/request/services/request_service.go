package services

import (
	"context"
	"encoding/json"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/domain/entities/auditlog"
	"github.com/campuskit/campuskit/modules/request/permissions"
	"github.com/campuskit/campuskit/pkg/authz"
	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/eventbus"
	"github.com/campuskit/campuskit/pkg/outbox"
)

// ReferenceChecker verifies that resources referenced by a new request exist.
// Implemented by the catalog and core modules; failures surface before any
// write happens.
type ReferenceChecker interface {
	CheckDepartment(ctx context.Context, id string) error
	CheckVenue(ctx context.Context, id string) error
	CheckVehicle(ctx context.Context, id string) error
	CheckItem(ctx context.Context, id string) error
}

// ReleasePolicy adjusts a request when it moves ON_HOLD -> PENDING. The
// default keeps assignment and rejection history intact.
type ReleasePolicy func(r request.Request) request.Request

func KeepOnRelease(r request.Request) request.Request { return r }

// ResetAssigneeOnRelease clears the job assignee so a released request goes
// back into the unassigned queue.
func ResetAssigneeOnRelease(r request.Request) request.Request {
	job, ok := r.Detail().(request.JobDetail)
	if !ok {
		return r
	}
	job.AssigneeID = ""
	return r.WithDetail(job)
}

type RequestServiceConfig struct {
	Repo        request.Repository
	Audits      auditlog.Repository
	EventBus    eventbus.EventBus
	Outbox      outbox.Publisher
	OutboxTable pgx.Identifier
	Titles      TitleGenerator
	Refs        ReferenceChecker
	Guard       *authz.Service
	Release     ReleasePolicy
}

// RequestService owns the request lifecycle. Every mutation runs in one
// transaction: the request write, the audit entry and the outbox row commit
// or roll back together. Eventbus publication happens after commit only.
type RequestService struct {
	cfg RequestServiceConfig
}

func NewRequestService(cfg RequestServiceConfig) *RequestService {
	if cfg.Release == nil {
		cfg.Release = KeepOnRelease
	}
	return &RequestService{cfg: cfg}
}

func (s *RequestService) GetByID(ctx context.Context, id string) (request.Request, error) {
	return s.cfg.Repo.GetByID(ctx, id)
}

func (s *RequestService) GetPaginated(ctx context.Context, params *request.FindParams) ([]request.Request, int64, error) {
	return s.cfg.Repo.GetPaginated(ctx, params)
}

func (s *RequestService) AuditTrail(ctx context.Context, id string) ([]auditlog.Entry, error) {
	if _, err := s.cfg.Repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.cfg.Audits.ListByRequestID(ctx, id)
}

func (s *RequestService) Create(ctx context.Context, dto *request.CreateDTO) (request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return request.Request{}, err
	}
	if err := s.require(actor.Role, permissions.ActionCreate); err != nil {
		return request.Request{}, err
	}

	if err := s.checkReferences(ctx, dto); err != nil {
		return request.Request{}, err
	}

	detail, err := dto.ToDetail()
	if err != nil {
		return request.Request{}, err
	}

	title := dto.Title
	if title == "" {
		title = s.generateTitle(ctx, dto)
	}

	entity := request.New(dto.Type, dto.Priority, title, dto.Description, actor.ID, dto.DepartmentID, detail)

	var created request.Request
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.cfg.Repo.Create(txCtx, entity)
		if err != nil {
			return err
		}
		if err := s.recordAudit(txCtx, created.ID(), request.ChangeCreated, actor.ID, request.Request{}, created); err != nil {
			return err
		}
		return s.enqueueNotification(txCtx, created, request.ChangeCreated, actor.ID)
	})
	if err != nil {
		return request.Request{}, err
	}

	if s.cfg.EventBus != nil {
		s.cfg.EventBus.Publish(request.CreatedEvent{Result: created})
	}
	return created, nil
}

func (s *RequestService) UpdateStatus(ctx context.Context, id string, dto *request.UpdateStatusDTO) (request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return request.Request{}, err
	}
	if err := s.require(actor.Role, permissions.StatusAction(dto.Status)); err != nil {
		return request.Request{}, err
	}

	var old, updated request.Request
	var changeType request.ChangeType
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		old, err = s.cfg.Repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		next, ct, err := old.Transition(dto.Status, dto.Reason)
		if err != nil {
			return err
		}
		if old.Status() == request.StatusOnHold && dto.Status == request.StatusPending {
			next = s.cfg.Release(next)
		}
		changeType = ct

		updated, err = s.cfg.Repo.Update(txCtx, next)
		if err != nil {
			return err
		}
		if err := s.recordAudit(txCtx, updated.ID(), ct, actor.ID, old, updated); err != nil {
			return err
		}
		return s.enqueueNotification(txCtx, updated, ct, actor.ID)
	})
	if err != nil {
		return request.Request{}, err
	}

	if s.cfg.EventBus != nil {
		s.cfg.EventBus.Publish(request.UpdatedEvent{Old: old, Result: updated, ChangeType: changeType})
	}
	return updated, nil
}

func (s *RequestService) Cancel(ctx context.Context, id string, dto *request.CancelDTO) (request.Request, error) {
	return s.UpdateStatus(ctx, id, &request.UpdateStatusDTO{
		Status: request.StatusCancelled,
		Reason: dto.Reason,
	})
}

// AssignPersonnel updates assignee/reviewer/approver on the typed detail.
// Personnel may only change while the request is PENDING; once it has been
// approved or closed the assignment is part of the decided record. When
// nothing actually changes the call is a no-op: no audit entry, no
// notification, no write.
func (s *RequestService) AssignPersonnel(ctx context.Context, id string, dto *request.AssignDTO) (request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return request.Request{}, err
	}
	if err := s.require(actor.Role, permissions.ActionAssign); err != nil {
		return request.Request{}, err
	}

	var old, updated request.Request
	var changeType request.ChangeType
	noop := false
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		old, err = s.cfg.Repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if old.Status() != request.StatusPending {
			return gerrors.Wrapf(request.ErrInvalidTransition, "cannot assign personnel while %s", old.Status())
		}

		next, ct, changed, err := applyAssignment(old, dto)
		if err != nil {
			return err
		}
		if !changed {
			noop = true
			updated = old
			return nil
		}
		changeType = ct

		updated, err = s.cfg.Repo.Update(txCtx, next)
		if err != nil {
			return err
		}
		if err := s.recordAudit(txCtx, updated.ID(), ct, actor.ID, old, updated); err != nil {
			return err
		}
		return s.enqueueNotification(txCtx, updated, ct, actor.ID)
	})
	if err != nil {
		return request.Request{}, err
	}

	if !noop && s.cfg.EventBus != nil {
		s.cfg.EventBus.Publish(request.UpdatedEvent{Old: old, Result: updated, ChangeType: changeType})
	}
	return updated, nil
}

func applyAssignment(r request.Request, dto *request.AssignDTO) (request.Request, request.ChangeType, bool, error) {
	switch detail := r.Detail().(type) {
	case request.JobDetail:
		assignee, reviewer, approver := false, false, false
		if dto.AssigneeID != nil && *dto.AssigneeID != detail.AssigneeID {
			detail.AssigneeID = *dto.AssigneeID
			assignee = true
		}
		if dto.ReviewerID != nil && *dto.ReviewerID != detail.ReviewerID {
			detail.ReviewerID = *dto.ReviewerID
			reviewer = true
		}
		if dto.ApproverID != nil && *dto.ApproverID != detail.ApproverID {
			detail.ApproverID = *dto.ApproverID
			approver = true
		}
		if !assignee && !reviewer && !approver {
			return r, "", false, nil
		}
		return r.WithDetail(detail), request.DeriveAssignmentChange(assignee, reviewer, approver), true, nil
	case request.TransportDetail:
		if dto.AssigneeID == nil || *dto.AssigneeID == detail.DriverID {
			return r, "", false, nil
		}
		detail.DriverID = *dto.AssigneeID
		return r.WithDetail(detail), request.ChangeAssignment, true, nil
	default:
		return r, "", false, gerrors.Wrapf(request.ErrDetailMismatch, "%s requests take no personnel", r.Type())
	}
}

func (s *RequestService) checkReferences(ctx context.Context, dto *request.CreateDTO) error {
	if s.cfg.Refs == nil {
		return nil
	}
	if err := s.cfg.Refs.CheckDepartment(ctx, dto.DepartmentID); err != nil {
		return err
	}
	switch dto.Type {
	case request.TypeVenue:
		return s.cfg.Refs.CheckVenue(ctx, dto.Venue.VenueID)
	case request.TypeTransport:
		return s.cfg.Refs.CheckVehicle(ctx, dto.Transport.VehicleID)
	case request.TypeReturnable:
		return s.cfg.Refs.CheckItem(ctx, dto.Borrow.ItemID)
	case request.TypeSupply:
		return s.cfg.Refs.CheckItem(ctx, dto.Supply.ItemID)
	}
	return nil
}

func (s *RequestService) generateTitle(ctx context.Context, dto *request.CreateDTO) string {
	if s.cfg.Titles == nil {
		return FallbackTitle(dto)
	}
	title, err := s.cfg.Titles.Generate(ctx, dto)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("title generation failed, using fallback")
		return FallbackTitle(dto)
	}
	return title
}

func (s *RequestService) recordAudit(ctx context.Context, requestID string, ct request.ChangeType, actorID string, old, updated request.Request) error {
	var oldValue json.RawMessage
	if !old.IsZero() {
		raw, err := old.MarshalSnapshot()
		if err != nil {
			return gerrors.Wrap(err, "snapshot before")
		}
		oldValue = raw
	}
	newValue, err := updated.MarshalSnapshot()
	if err != nil {
		return gerrors.Wrap(err, "snapshot after")
	}

	_, err = s.cfg.Audits.Create(ctx, auditlog.New(requestID, ct, actorID, oldValue, newValue))
	return err
}

func (s *RequestService) enqueueNotification(ctx context.Context, r request.Request, ct request.ChangeType, actorID string) error {
	if s.cfg.Outbox == nil {
		return nil
	}
	tx, err := composables.UseStrictTx(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(request.Notification{
		RequestID:  r.ID(),
		Title:      r.Title(),
		Type:       r.Type(),
		Status:     r.Status(),
		ChangeType: ct,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return gerrors.Wrap(err, "notification payload")
	}

	_, err = s.cfg.Outbox.Enqueue(ctx, tx, s.cfg.OutboxTable, outbox.Message{
		Topic:   request.TopicRequestUpdate,
		EventID: uuid.New(),
		Payload: payload,
	})
	return err
}

func (s *RequestService) require(role, action string) error {
	if s.cfg.Guard == nil {
		return nil
	}
	return s.cfg.Guard.Require(role, permissions.Object, action)
}
