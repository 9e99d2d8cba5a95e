package request

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobDTO() *CreateDTO {
	return &CreateDTO{
		Type:         TypeJob,
		Priority:     PriorityHigh,
		Title:        "Fix projector",
		DepartmentID: "d-1",
		Job: &JobDTO{
			JobType:     "MAINTENANCE",
			Description: "Projector does not power on.",
		},
	}
}

func TestCreateDTO_Ok(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		fields, ok := validJobDTO().Ok()
		assert.True(t, ok)
		assert.Empty(t, fields)
	})

	t.Run("NormalizesCase", func(t *testing.T) {
		dto := validJobDTO()
		dto.Type = " job "
		dto.Priority = "high"
		_, ok := dto.Ok()
		require.True(t, ok)
		assert.Equal(t, TypeJob, dto.Type)
		assert.Equal(t, PriorityHigh, dto.Priority)
	})

	t.Run("UnknownType", func(t *testing.T) {
		dto := validJobDTO()
		dto.Type = "PARKING"
		fields, ok := dto.Ok()
		assert.False(t, ok)
		assert.Contains(t, fields, "Type")
	})

	t.Run("MissingKindBody", func(t *testing.T) {
		dto := validJobDTO()
		dto.Job = nil
		fields, ok := dto.Ok()
		assert.False(t, ok)
		assert.Contains(t, fields, "Job")
	})

	t.Run("KindBodyValidated", func(t *testing.T) {
		dto := &CreateDTO{
			Type:         TypeVenue,
			Priority:     PriorityLow,
			DepartmentID: "d-1",
			Venue: &VenueDTO{
				VenueID:           "v-1",
				EventDate:         time.Now(),
				StartTime:         "09:00",
				EndTime:           "11:00",
				ExpectedAttendees: 0,
				Purpose:           "Seminar",
			},
		}
		fields, ok := dto.Ok()
		assert.False(t, ok)
		assert.Contains(t, fields, "ExpectedAttendees")
	})

	t.Run("MissingDepartment", func(t *testing.T) {
		dto := validJobDTO()
		dto.DepartmentID = ""
		fields, ok := dto.Ok()
		assert.False(t, ok)
		assert.Contains(t, fields, "DepartmentID")
	})
}

func TestCreateDTO_ToDetail(t *testing.T) {
	t.Run("JobCostParsed", func(t *testing.T) {
		dto := validJobDTO()
		dto.Job.CostEstimate = "1250.75"
		detail, err := dto.ToDetail()
		require.NoError(t, err)

		job, ok := detail.(JobDetail)
		require.True(t, ok)
		assert.True(t, job.CostEstimate.Equal(decimal.RequireFromString("1250.75")))
		assert.Equal(t, PrefixJob, job.ID[:3])
	})

	t.Run("JobCostInvalid", func(t *testing.T) {
		dto := validJobDTO()
		dto.Job.CostEstimate = "about fifty"
		_, err := dto.ToDetail()
		require.ErrorIs(t, err, ErrDetailMismatch)
	})

	t.Run("FreshIDPerCall", func(t *testing.T) {
		dto := validJobDTO()
		first, err := dto.ToDetail()
		require.NoError(t, err)
		second, err := dto.ToDetail()
		require.NoError(t, err)
		assert.NotEqual(t, first.DetailID(), second.DetailID())
	})
}

func TestUpdateStatusDTO_Ok(t *testing.T) {
	dto := &UpdateStatusDTO{Status: " approved "}
	_, ok := dto.Ok()
	require.True(t, ok)
	assert.Equal(t, StatusApproved, dto.Status)

	dto = &UpdateStatusDTO{}
	fields, ok := dto.Ok()
	assert.False(t, ok)
	assert.Contains(t, fields, "Status")
}

func TestUpdateStatusDTO_CancelRequiresReason(t *testing.T) {
	dto := &UpdateStatusDTO{Status: StatusCancelled}
	fields, ok := dto.Ok()
	assert.False(t, ok)
	assert.Contains(t, fields, "Reason")

	dto = &UpdateStatusDTO{Status: StatusCancelled, Reason: "duplicate request"}
	_, ok = dto.Ok()
	assert.True(t, ok)

	// Other transitions keep the reason optional.
	dto = &UpdateStatusDTO{Status: StatusApproved}
	_, ok = dto.Ok()
	assert.True(t, ok)
}

func TestCancelDTO_Ok(t *testing.T) {
	dto := &CancelDTO{}
	fields, ok := dto.Ok()
	assert.False(t, ok)
	assert.Contains(t, fields, "Reason")

	dto = &CancelDTO{Reason: "duplicate request"}
	_, ok = dto.Ok()
	assert.True(t, ok)
}
