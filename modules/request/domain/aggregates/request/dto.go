package request

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/campuskit/campuskit/pkg/constants"
	"github.com/campuskit/campuskit/pkg/serrors"
)

type JobDTO struct {
	JobType      string     `json:"job_type" validate:"required,max=100"`
	Description  string     `json:"description" validate:"required,max=2000"`
	DueDate      *time.Time `json:"due_date"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	CostEstimate string     `json:"cost_estimate"`
}

type VenueDTO struct {
	VenueID           string    `json:"venue_id" validate:"required"`
	EventDate         time.Time `json:"event_date" validate:"required"`
	StartTime         string    `json:"start_time" validate:"required"`
	EndTime           string    `json:"end_time" validate:"required"`
	ExpectedAttendees int       `json:"expected_attendees" validate:"gt=0"`
	Purpose           string    `json:"purpose" validate:"required,max=2000"`
}

type TransportDTO struct {
	VehicleID      string    `json:"vehicle_id" validate:"required"`
	TravelDate     time.Time `json:"travel_date" validate:"required"`
	Destination    string    `json:"destination" validate:"required,max=500"`
	PassengerCount int       `json:"passenger_count" validate:"gt=0"`
	Purpose        string    `json:"purpose" validate:"required,max=2000"`
}

type BorrowDTO struct {
	ItemID     string    `json:"item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"gt=0"`
	BorrowDate time.Time `json:"borrow_date" validate:"required"`
	ReturnDate time.Time `json:"return_date" validate:"required"`
	Purpose    string    `json:"purpose" validate:"required,max=2000"`
}

type SupplyDTO struct {
	ItemID   string     `json:"item_id" validate:"required"`
	Quantity int        `json:"quantity" validate:"gt=0"`
	NeededBy *time.Time `json:"needed_by"`
	Purpose  string     `json:"purpose" validate:"required,max=2000"`
}

// CreateDTO carries the envelope fields plus exactly one kind body matching
// Type. Title is optional; a missing title is generated by the service.
type CreateDTO struct {
	Type         Type          `json:"type" validate:"required"`
	Priority     Priority      `json:"priority" validate:"required"`
	Title        string        `json:"title" validate:"max=255"`
	Description  string        `json:"description" validate:"max=2000"`
	DepartmentID string        `json:"department_id" validate:"required"`
	Job          *JobDTO       `json:"job,omitempty"`
	Venue        *VenueDTO     `json:"venue,omitempty"`
	Transport    *TransportDTO `json:"transport,omitempty"`
	Borrow       *BorrowDTO    `json:"borrow,omitempty"`
	Supply       *SupplyDTO    `json:"supply,omitempty"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Type = Type(strings.ToUpper(strings.TrimSpace(string(d.Type))))
	d.Priority = Priority(strings.ToUpper(strings.TrimSpace(string(d.Priority))))
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := make(serrors.ValidationErrors)
	if err := constants.Validate.Struct(d); err != nil {
		for field, ve := range serrors.ProcessValidatorErrors(err.(validator.ValidationErrors)) {
			errs[field] = ve
		}
	}
	if !d.Type.Valid() {
		errs["Type"] = serrors.NewValidationError("Type", "oneof")
	}
	if !d.Priority.Valid() {
		errs["Priority"] = serrors.NewValidationError("Priority", "oneof")
	}

	if body, field := d.body(); body == nil {
		if d.Type.Valid() {
			errs[field] = serrors.NewValidationError(field, "required")
		}
	} else if err := constants.Validate.Struct(body); err != nil {
		for field, ve := range serrors.ProcessValidatorErrors(err.(validator.ValidationErrors)) {
			errs[field] = ve
		}
	}

	if len(errs) > 0 {
		return errs.Messages(), false
	}
	return nil, true
}

func (d *CreateDTO) body() (any, string) {
	switch d.Type {
	case TypeJob:
		if d.Job == nil {
			return nil, "Job"
		}
		return d.Job, "Job"
	case TypeVenue:
		if d.Venue == nil {
			return nil, "Venue"
		}
		return d.Venue, "Venue"
	case TypeTransport:
		if d.Transport == nil {
			return nil, "Transport"
		}
		return d.Transport, "Transport"
	case TypeReturnable:
		if d.Borrow == nil {
			return nil, "Borrow"
		}
		return d.Borrow, "Borrow"
	case TypeSupply:
		if d.Supply == nil {
			return nil, "Supply"
		}
		return d.Supply, "Supply"
	default:
		return nil, "Type"
	}
}

// ToDetail builds the typed detail with a fresh kind-prefixed ID.
func (d *CreateDTO) ToDetail() (Detail, error) {
	switch d.Type {
	case TypeJob:
		cost := decimal.Zero
		if strings.TrimSpace(d.Job.CostEstimate) != "" {
			parsed, err := decimal.NewFromString(d.Job.CostEstimate)
			if err != nil {
				return nil, serrors.WithDetails(ErrDetailMismatch, "cost_estimate is not a number")
			}
			cost = parsed
		}
		return JobDetail{
			ID:           NewID(PrefixJob),
			JobType:      strings.TrimSpace(d.Job.JobType),
			Description:  strings.TrimSpace(d.Job.Description),
			DueDate:      d.Job.DueDate,
			StartDate:    d.Job.StartDate,
			EndDate:      d.Job.EndDate,
			CostEstimate: cost,
			ActualCost:   decimal.Zero,
		}, nil
	case TypeVenue:
		return VenueDetail{
			ID:                NewID(PrefixVenue),
			VenueID:           d.Venue.VenueID,
			EventDate:         d.Venue.EventDate,
			StartTime:         d.Venue.StartTime,
			EndTime:           d.Venue.EndTime,
			ExpectedAttendees: d.Venue.ExpectedAttendees,
			Purpose:           strings.TrimSpace(d.Venue.Purpose),
		}, nil
	case TypeTransport:
		return TransportDetail{
			ID:             NewID(PrefixTransport),
			VehicleID:      d.Transport.VehicleID,
			TravelDate:     d.Transport.TravelDate,
			Destination:    strings.TrimSpace(d.Transport.Destination),
			PassengerCount: d.Transport.PassengerCount,
			Purpose:        strings.TrimSpace(d.Transport.Purpose),
		}, nil
	case TypeReturnable:
		return BorrowDetail{
			ID:         NewID(PrefixReturnable),
			ItemID:     d.Borrow.ItemID,
			Quantity:   d.Borrow.Quantity,
			BorrowDate: d.Borrow.BorrowDate,
			ReturnDate: d.Borrow.ReturnDate,
			Purpose:    strings.TrimSpace(d.Borrow.Purpose),
		}, nil
	case TypeSupply:
		return SupplyDetail{
			ID:       NewID(PrefixSupply),
			ItemID:   d.Supply.ItemID,
			Quantity: d.Supply.Quantity,
			NeededBy: d.Supply.NeededBy,
			Purpose:  strings.TrimSpace(d.Supply.Purpose),
		}, nil
	default:
		return nil, ErrDetailMismatch
	}
}

// UpdateStatusDTO is the body for status transitions. Reason is required for
// cancellations only.
type UpdateStatusDTO struct {
	Status Status `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"max=1000"`
}

func (d *UpdateStatusDTO) Normalize() {
	d.Status = Status(strings.ToUpper(strings.TrimSpace(string(d.Status))))
	d.Reason = strings.TrimSpace(d.Reason)
}

func (d *UpdateStatusDTO) Ok() (map[string]string, bool) {
	d.Normalize()
	errs := make(serrors.ValidationErrors)
	if err := constants.Validate.Struct(d); err != nil {
		for field, ve := range serrors.ProcessValidatorErrors(err.(validator.ValidationErrors)) {
			errs[field] = ve
		}
	}
	if d.Status != "" && !d.Status.Valid() {
		errs["Status"] = serrors.NewValidationError("Status", "oneof")
	}
	// Cancellation always carries a reason, whichever route it arrives by.
	if d.Status == StatusCancelled && d.Reason == "" {
		errs["Reason"] = serrors.NewValidationError("Reason", "required")
	}
	if len(errs) > 0 {
		return errs.Messages(), false
	}
	return nil, true
}

// AssignDTO carries the personnel fields; nil means "leave unchanged".
type AssignDTO struct {
	AssigneeID *string `json:"assignee_id"`
	ReviewerID *string `json:"reviewer_id"`
	ApproverID *string `json:"approver_id"`
}

func (d *AssignDTO) Empty() bool {
	return d.AssigneeID == nil && d.ReviewerID == nil && d.ApproverID == nil
}

type CancelDTO struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

func (d *CancelDTO) Ok() (map[string]string, bool) {
	d.Reason = strings.TrimSpace(d.Reason)
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.ProcessValidatorErrors(err.(validator.ValidationErrors)).Messages(), false
	}
	return nil, true
}
