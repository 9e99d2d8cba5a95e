package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
)

func TestCanTransition(t *testing.T) {
	all := []request.Status{
		request.StatusPending,
		request.StatusApproved,
		request.StatusRejected,
		request.StatusCancelled,
		request.StatusOnHold,
		request.StatusCompleted,
	}

	allowed := map[request.Status]map[request.Status]bool{
		request.StatusPending: {
			request.StatusApproved:  true,
			request.StatusRejected:  true,
			request.StatusCancelled: true,
			request.StatusOnHold:    true,
		},
		request.StatusOnHold:   {request.StatusPending: true},
		request.StatusApproved: {request.StatusCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, request.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, request.IsTerminal(request.StatusRejected))
	assert.True(t, request.IsTerminal(request.StatusCancelled))
	assert.True(t, request.IsTerminal(request.StatusCompleted))

	assert.False(t, request.IsTerminal(request.StatusPending))
	assert.False(t, request.IsTerminal(request.StatusOnHold))
	assert.False(t, request.IsTerminal(request.StatusApproved))
	assert.False(t, request.IsTerminal(request.Status("NOPE")))
}

func TestDeriveChangeType(t *testing.T) {
	cases := []struct {
		from, to request.Status
		want     request.ChangeType
	}{
		{request.StatusPending, request.StatusApproved, request.ChangeApproved},
		{request.StatusPending, request.StatusCancelled, request.ChangeCancelled},
		{request.StatusPending, request.StatusRejected, request.ChangeStatus},
		{request.StatusPending, request.StatusOnHold, request.ChangeStatus},
		{request.StatusOnHold, request.StatusPending, request.ChangeStatus},
		{request.StatusApproved, request.StatusCompleted, request.ChangeStatus},
		{request.StatusPending, request.StatusPending, request.ChangeOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, request.DeriveChangeType(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransition(t *testing.T) {
	r := request.New(request.TypeSupply, request.PriorityLow, "t", "d", "user-1", "dep-1", request.SupplyDetail{
		ID: request.NewID(request.PrefixSupply), ItemID: "item-1", Quantity: 2, Purpose: "p",
	})

	t.Run("LegalEdge", func(t *testing.T) {
		next, ct, err := r.Transition(request.StatusApproved, "")
		require.NoError(t, err)
		assert.Equal(t, request.StatusApproved, next.Status())
		assert.Equal(t, request.ChangeApproved, ct)
		assert.Equal(t, request.StatusPending, r.Status(), "original untouched")
	})

	t.Run("CancelRecordsReason", func(t *testing.T) {
		next, ct, err := r.Transition(request.StatusCancelled, "no longer needed")
		require.NoError(t, err)
		assert.Equal(t, request.ChangeCancelled, ct)
		assert.Equal(t, "no longer needed", next.CancelReason())
	})

	t.Run("CompleteStampsTime", func(t *testing.T) {
		approved, _, err := r.Transition(request.StatusApproved, "")
		require.NoError(t, err)
		done, _, err := approved.Transition(request.StatusCompleted, "")
		require.NoError(t, err)
		require.NotNil(t, done.CompletedAt())
	})

	t.Run("TerminalRejectsEverything", func(t *testing.T) {
		cancelled, _, err := r.Transition(request.StatusCancelled, "x")
		require.NoError(t, err)
		_, _, err = cancelled.Transition(request.StatusPending, "")
		require.ErrorIs(t, err, request.ErrInvalidTransition)
	})
}

func TestNewID(t *testing.T) {
	id := request.NewID(request.PrefixRequest)
	require.Len(t, id, len("REQ-")+15)
	assert.Equal(t, "REQ-", id[:4])

	assert.NotEqual(t, id, request.NewID(request.PrefixRequest))
	assert.Equal(t, "JRQ", request.DetailPrefix(request.TypeJob))
	assert.Equal(t, "BRQ", request.DetailPrefix(request.TypeReturnable))
}
