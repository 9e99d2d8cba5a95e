package request_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
)

func TestMarshalSnapshot(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	r := request.New(request.TypeJob, request.PriorityHigh, "Fix hall lights", "lights out in west wing", "user-7", "dep-3", request.JobDetail{
		ID:           "JRQ-abcdefghijklmno",
		JobType:      "ELECTRICAL",
		Description:  "lights out in west wing",
		DueDate:      &due,
		CostEstimate: decimal.RequireFromString("150.50"),
		ActualCost:   decimal.Zero,
	})

	raw, err := r.MarshalSnapshot()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, r.ID(), got["id"])
	assert.Equal(t, "Fix hall lights", got["title"])
	assert.Equal(t, "JOB", got["type"])
	assert.Equal(t, "PENDING", got["status"])

	detail, ok := got["detail"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "JRQ-abcdefghijklmno", detail["id"])
	assert.Equal(t, "ELECTRICAL", detail["job_type"])
	assert.Equal(t, "150.5", detail["cost_estimate"])
}

func TestSnapshotReflectsTransition(t *testing.T) {
	r := request.New(request.TypeSupply, request.PriorityLow, "Markers", "", "user-1", "dep-1", request.SupplyDetail{
		ID: "SRQ-abcdefghijklmno", ItemID: "item-9", Quantity: 10, Purpose: "classroom",
	})

	before, err := r.MarshalSnapshot()
	require.NoError(t, err)

	next, _, err := r.Transition(request.StatusApproved, "")
	require.NoError(t, err)
	after, err := next.MarshalSnapshot()
	require.NoError(t, err)

	assert.NotEqual(t, string(before), string(after))
	assert.Contains(t, string(before), `"status":"PENDING"`)
	assert.Contains(t, string(after), `"status":"APPROVED"`)
}
