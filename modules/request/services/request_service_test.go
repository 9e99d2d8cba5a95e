package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/domain/entities/auditlog"
	"github.com/campuskit/campuskit/modules/request/permissions"
	"github.com/campuskit/campuskit/pkg/authz"
	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/constants"
	"github.com/campuskit/campuskit/pkg/outbox"
	"github.com/campuskit/campuskit/pkg/repo"
)

type mockRequestRepo struct {
	byID        map[string]request.Request
	createCalls int
	updateCalls int
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{byID: make(map[string]request.Request)}
}

func (m *mockRequestRepo) GetPaginated(ctx context.Context, params *request.FindParams) ([]request.Request, int64, error) {
	out := make([]request.Request, 0, len(m.byID))
	for _, r := range m.byID {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (request.Request, error) {
	r, ok := m.byID[id]
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	return r, nil
}

func (m *mockRequestRepo) Create(ctx context.Context, r request.Request) (request.Request, error) {
	m.createCalls++
	m.byID[r.ID()] = r
	return r, nil
}

func (m *mockRequestRepo) Update(ctx context.Context, r request.Request) (request.Request, error) {
	m.updateCalls++
	if _, ok := m.byID[r.ID()]; !ok {
		return request.Request{}, request.ErrNotFound
	}
	m.byID[r.ID()] = r
	return r, nil
}

type mockAuditRepo struct {
	entries []auditlog.Entry
}

func (m *mockAuditRepo) Create(ctx context.Context, e auditlog.Entry) (auditlog.Entry, error) {
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *mockAuditRepo) ListByRequestID(ctx context.Context, requestID string) ([]auditlog.Entry, error) {
	var out []auditlog.Entry
	for _, e := range m.entries {
		if e.RequestID() == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockEventBus struct {
	events []any
}

func (m *mockEventBus) Publish(args ...any) {
	m.events = append(m.events, args...)
}

func (m *mockEventBus) Subscribe(handler any)   {}
func (m *mockEventBus) Unsubscribe(handler any) {}
func (m *mockEventBus) Clear()                  {}
func (m *mockEventBus) SubscribersCount() int   { return 0 }

type mockOutbox struct {
	messages []outbox.Message
}

func (m *mockOutbox) Enqueue(ctx context.Context, tx repo.Tx, table pgx.Identifier, msg outbox.Message) (int64, error) {
	m.messages = append(m.messages, msg)
	return int64(len(m.messages)), nil
}

type mockTitleGen struct {
	title string
	err   error
	calls int
}

func (m *mockTitleGen) Generate(ctx context.Context, dto *request.CreateDTO) (string, error) {
	m.calls++
	return m.title, m.err
}

type mockRefs struct {
	departmentErr error
	checked       []string
}

func (m *mockRefs) CheckDepartment(ctx context.Context, id string) error {
	m.checked = append(m.checked, "department:"+id)
	return m.departmentErr
}

func (m *mockRefs) CheckVenue(ctx context.Context, id string) error {
	m.checked = append(m.checked, "venue:"+id)
	return nil
}

func (m *mockRefs) CheckVehicle(ctx context.Context, id string) error {
	m.checked = append(m.checked, "vehicle:"+id)
	return nil
}

func (m *mockRefs) CheckItem(ctx context.Context, id string) error {
	m.checked = append(m.checked, "item:"+id)
	return nil
}

// stubTx satisfies repo.Tx for code paths that only pass the handle along.
type stubTx struct{}

func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func testContext(actor composables.Actor) context.Context {
	ctx := composables.WithUser(context.Background(), actor)
	return context.WithValue(ctx, constants.TxKey, stubTx{})
}

func requester() composables.Actor {
	return composables.Actor{ID: "u-1", Role: "USER", DepartmentID: "d-1"}
}

func approver() composables.Actor {
	return composables.Actor{ID: "u-2", Role: "APPROVER", DepartmentID: "d-1"}
}

type fixture struct {
	svc    *RequestService
	repo   *mockRequestRepo
	audits *mockAuditRepo
	bus    *mockEventBus
	outbox *mockOutbox
}

func newFixture(mutate ...func(*RequestServiceConfig)) *fixture {
	f := &fixture{
		repo:   newMockRequestRepo(),
		audits: &mockAuditRepo{},
		bus:    &mockEventBus{},
		outbox: &mockOutbox{},
	}
	cfg := RequestServiceConfig{
		Repo:        f.repo,
		Audits:      f.audits,
		EventBus:    f.bus,
		Outbox:      f.outbox,
		OutboxTable: pgx.Identifier{"public", "request_outbox"},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	f.svc = NewRequestService(cfg)
	return f
}

func jobCreateDTO() *request.CreateDTO {
	return &request.CreateDTO{
		Type:         request.TypeJob,
		Priority:     request.PriorityHigh,
		Title:        "Fix projector in room 204",
		DepartmentID: "d-1",
		Job: &request.JobDTO{
			JobType:     "MAINTENANCE",
			Description: "The ceiling projector no longer powers on.",
		},
	}
}

func TestRequestService_Create(t *testing.T) {
	f := newFixture()
	ctx := testContext(requester())

	created, err := f.svc.Create(ctx, jobCreateDTO())
	require.NoError(t, err)

	assert.Equal(t, request.StatusPending, created.Status())
	assert.Equal(t, "u-1", created.RequesterID())
	require.IsType(t, request.JobDetail{}, created.Detail())

	require.Equal(t, 1, f.repo.createCalls)
	require.Len(t, f.audits.entries, 1)
	entry := f.audits.entries[0]
	assert.Equal(t, created.ID(), entry.RequestID())
	assert.Equal(t, request.ChangeCreated, entry.ChangeType())
	assert.Equal(t, "u-1", entry.ActorID())
	assert.Empty(t, entry.OldValue())
	assert.NotEmpty(t, entry.NewValue())

	require.Len(t, f.outbox.messages, 1)
	assert.Equal(t, request.TopicRequestUpdate, f.outbox.messages[0].Topic)

	require.Len(t, f.bus.events, 1)
	ev, ok := f.bus.events[0].(request.CreatedEvent)
	require.True(t, ok)
	assert.Equal(t, created.ID(), ev.Result.ID())
}

func TestRequestService_Create_RequiresUser(t *testing.T) {
	f := newFixture()
	ctx := context.WithValue(context.Background(), constants.TxKey, stubTx{})

	_, err := f.svc.Create(ctx, jobCreateDTO())
	require.ErrorIs(t, err, composables.ErrNoUser)
	assert.Zero(t, f.repo.createCalls)
}

func TestRequestService_Create_ReferenceFailureBlocksWrite(t *testing.T) {
	refs := &mockRefs{departmentErr: request.ErrDependency}
	f := newFixture(func(cfg *RequestServiceConfig) { cfg.Refs = refs })
	ctx := testContext(requester())

	_, err := f.svc.Create(ctx, jobCreateDTO())
	require.ErrorIs(t, err, request.ErrDependency)
	assert.Zero(t, f.repo.createCalls)
	assert.Empty(t, f.audits.entries)
	assert.Empty(t, f.outbox.messages)
}

func TestRequestService_Create_TitleGenerationFallsBack(t *testing.T) {
	titles := &mockTitleGen{err: errors.New("upstream timeout")}
	f := newFixture(func(cfg *RequestServiceConfig) { cfg.Titles = titles })
	ctx := testContext(requester())

	dto := jobCreateDTO()
	dto.Title = ""
	created, err := f.svc.Create(ctx, dto)
	require.NoError(t, err)
	require.Equal(t, 1, titles.calls)
	assert.NotEmpty(t, created.Title())
	assert.Equal(t, FallbackTitle(dto), created.Title())
}

func TestRequestService_Create_KeepsProvidedTitle(t *testing.T) {
	titles := &mockTitleGen{title: "Generated title"}
	f := newFixture(func(cfg *RequestServiceConfig) { cfg.Titles = titles })
	ctx := testContext(requester())

	created, err := f.svc.Create(ctx, jobCreateDTO())
	require.NoError(t, err)
	assert.Equal(t, "Fix projector in room 204", created.Title())
	assert.Zero(t, titles.calls)
}

func seedRequest(t *testing.T, f *fixture, status request.Status) request.Request {
	t.Helper()
	detail := request.JobDetail{ID: "JRQ-abc", JobType: "MAINTENANCE", Description: "seed"}
	entity := request.New(request.TypeJob, request.PriorityMedium, "Seed", "", "u-1", "d-1", detail)
	if status != request.StatusPending {
		var err error
		entity, _, err = entity.Transition(status, "seed")
		require.NoError(t, err)
	}
	f.repo.byID[entity.ID()] = entity
	return entity
}

func TestRequestService_UpdateStatus(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusPending)

	updated, err := f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, updated.Status())

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, request.ChangeApproved, f.audits.entries[0].ChangeType())
	assert.NotEmpty(t, f.audits.entries[0].OldValue())

	require.Len(t, f.bus.events, 1)
	ev, ok := f.bus.events[0].(request.UpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, request.StatusPending, ev.Old.Status())
	assert.Equal(t, request.ChangeApproved, ev.ChangeType)
	require.Len(t, f.outbox.messages, 1)
}

func TestRequestService_UpdateStatus_TerminalRejected(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusRejected)

	_, err := f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusApproved})
	require.ErrorIs(t, err, request.ErrInvalidTransition)
	assert.Zero(t, f.repo.updateCalls)
	assert.Empty(t, f.audits.entries)
	assert.Empty(t, f.bus.events)
}

func TestRequestService_UpdateStatus_NotFound(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())

	_, err := f.svc.UpdateStatus(ctx, "REQ-missing", &request.UpdateStatusDTO{Status: request.StatusApproved})
	require.ErrorIs(t, err, request.ErrNotFound)
}

func TestRequestService_UpdateStatus_ReleasePolicyRuns(t *testing.T) {
	f := newFixture(func(cfg *RequestServiceConfig) { cfg.Release = ResetAssigneeOnRelease })
	ctx := testContext(approver())

	seeded := seedRequest(t, f, request.StatusPending)
	assignee := "u-9"
	_, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &assignee})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusOnHold})
	require.NoError(t, err)

	released, err := f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusPending})
	require.NoError(t, err)

	job, ok := released.Detail().(request.JobDetail)
	require.True(t, ok)
	assert.Empty(t, job.AssigneeID)
}

func TestRequestService_Cancel(t *testing.T) {
	f := newFixture()
	ctx := testContext(requester())
	seeded := seedRequest(t, f, request.StatusPending)

	cancelled, err := f.svc.Cancel(ctx, seeded.ID(), &request.CancelDTO{Reason: "no longer needed"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusCancelled, cancelled.Status())
	assert.Equal(t, "no longer needed", cancelled.CancelReason())

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, request.ChangeCancelled, f.audits.entries[0].ChangeType())
}

func TestRequestService_AssignPersonnel(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusPending)

	assignee := "u-9"
	updated, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &assignee})
	require.NoError(t, err)

	job, ok := updated.Detail().(request.JobDetail)
	require.True(t, ok)
	assert.Equal(t, "u-9", job.AssigneeID)

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, request.ChangeAssignment, f.audits.entries[0].ChangeType())
}

func TestRequestService_AssignPersonnel_NoopSkipsWrites(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusPending)

	assignee := "u-9"
	_, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &assignee})
	require.NoError(t, err)

	before := f.repo.updateCalls
	updated, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &assignee})
	require.NoError(t, err)

	assert.Equal(t, before, f.repo.updateCalls)
	assert.Len(t, f.audits.entries, 1)
	assert.Len(t, f.outbox.messages, 1)
	job := updated.Detail().(request.JobDetail)
	assert.Equal(t, "u-9", job.AssigneeID)
}

func TestRequestService_AssignPersonnel_MultipleFieldsIsFieldUpdate(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusPending)

	assignee, reviewer := "u-9", "u-10"
	_, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{
		AssigneeID: &assignee,
		ReviewerID: &reviewer,
	})
	require.NoError(t, err)

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, request.ChangeField, f.audits.entries[0].ChangeType())
}

// Two assignments with different personnel race without any concurrency
// token: the last writer wins and both land in the audit trail.
func TestRequestService_AssignPersonnel_LastWriterWins(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusPending)

	first, second := "u-9", "u-10"
	_, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &first})
	require.NoError(t, err)
	updated, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &second})
	require.NoError(t, err)

	job, ok := updated.Detail().(request.JobDetail)
	require.True(t, ok)
	assert.Equal(t, "u-10", job.AssigneeID)

	require.Len(t, f.audits.entries, 2)
	assert.Equal(t, request.ChangeAssignment, f.audits.entries[0].ChangeType())
	assert.Equal(t, request.ChangeAssignment, f.audits.entries[1].ChangeType())
}

func TestRequestService_AssignPersonnel_OnlyWhilePending(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())

	for _, status := range []request.Status{
		request.StatusApproved,
		request.StatusOnHold,
	} {
		t.Run(string(status), func(t *testing.T) {
			seeded := seedRequest(t, f, status)
			assignee := "u-9"
			_, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &assignee})
			require.ErrorIs(t, err, request.ErrInvalidTransition)
		})
	}
	assert.Zero(t, f.repo.updateCalls)
	assert.Empty(t, f.audits.entries)
}

func TestRequestService_AssignPersonnel_TerminalRejected(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusCancelled)

	assignee := "u-9"
	_, err := f.svc.AssignPersonnel(ctx, seeded.ID(), &request.AssignDTO{AssigneeID: &assignee})
	require.ErrorIs(t, err, request.ErrInvalidTransition)
}

func TestRequestService_AssignPersonnel_DetailMismatch(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())

	detail := request.VenueDetail{ID: "VRQ-abc", VenueID: "v-1", EventDate: time.Now(), StartTime: "09:00", EndTime: "11:00"}
	entity := request.New(request.TypeVenue, request.PriorityLow, "Hall booking", "", "u-1", "d-1", detail)
	f.repo.byID[entity.ID()] = entity

	assignee := "u-9"
	_, err := f.svc.AssignPersonnel(ctx, entity.ID(), &request.AssignDTO{AssigneeID: &assignee})
	require.ErrorIs(t, err, request.ErrDetailMismatch)
}

func TestRequestService_AssignPersonnel_TransportMapsDriver(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())

	detail := request.TransportDetail{ID: "TRQ-abc", VehicleID: "vh-1", TravelDate: time.Now(), Destination: "Airport", PassengerCount: 3}
	entity := request.New(request.TypeTransport, request.PriorityMedium, "Airport run", "", "u-1", "d-1", detail)
	f.repo.byID[entity.ID()] = entity

	driver := "u-9"
	updated, err := f.svc.AssignPersonnel(ctx, entity.ID(), &request.AssignDTO{AssigneeID: &driver})
	require.NoError(t, err)

	transport, ok := updated.Detail().(request.TransportDetail)
	require.True(t, ok)
	assert.Equal(t, "u-9", transport.DriverID)
}

func TestRequestService_GuardDeniesUnderprivilegedRole(t *testing.T) {
	guard, err := authz.NewService(permissions.Policies(), permissions.Groupings())
	require.NoError(t, err)
	f := newFixture(func(cfg *RequestServiceConfig) { cfg.Guard = guard })
	seeded := seedRequest(t, f, request.StatusPending)

	ctx := testContext(requester())
	_, err = f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusApproved})
	require.ErrorIs(t, err, authz.ErrForbidden)
	assert.Zero(t, f.repo.updateCalls)

	// Cancelling their own request stays within the USER role.
	_, err = f.svc.Cancel(ctx, seeded.ID(), &request.CancelDTO{Reason: "changed plans"})
	require.NoError(t, err)

	seeded = seedRequest(t, f, request.StatusPending)
	ctx = testContext(approver())
	_, err = f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusApproved})
	require.NoError(t, err)
}

func TestRequestService_AuditTrail(t *testing.T) {
	f := newFixture()
	ctx := testContext(approver())
	seeded := seedRequest(t, f, request.StatusPending)

	_, err := f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusApproved})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, seeded.ID(), &request.UpdateStatusDTO{Status: request.StatusCompleted})
	require.NoError(t, err)

	trail, err := f.svc.AuditTrail(ctx, seeded.ID())
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, request.ChangeApproved, trail[0].ChangeType())
	assert.Equal(t, request.ChangeStatus, trail[1].ChangeType())

	_, err = f.svc.AuditTrail(ctx, "REQ-missing")
	require.ErrorIs(t, err, request.ErrNotFound)
}
