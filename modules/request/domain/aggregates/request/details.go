package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// Detail is the typed body of a request. Implementations are plain value
// structs; json tags double as the snapshot encoding for the audit trail.
type Detail interface {
	Kind() Type
	DetailID() string
}

type JobDetail struct {
	ID             string          `json:"id"`
	JobType        string          `json:"job_type"`
	Description    string          `json:"description"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	AssigneeID     string          `json:"assignee_id,omitempty"`
	ReviewerID     string          `json:"reviewer_id,omitempty"`
	ApproverID     string          `json:"approver_id,omitempty"`
	RejectionCount int             `json:"rejection_count"`
	Verified       bool            `json:"verified"`
	CostEstimate   decimal.Decimal `json:"cost_estimate"`
	ActualCost     decimal.Decimal `json:"actual_cost"`
}

func (d JobDetail) Kind() Type       { return TypeJob }
func (d JobDetail) DetailID() string { return d.ID }

type VenueDetail struct {
	ID                string    `json:"id"`
	VenueID           string    `json:"venue_id"`
	EventDate         time.Time `json:"event_date"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	ExpectedAttendees int       `json:"expected_attendees"`
	Purpose           string    `json:"purpose"`
}

func (d VenueDetail) Kind() Type       { return TypeVenue }
func (d VenueDetail) DetailID() string { return d.ID }

type TransportDetail struct {
	ID             string    `json:"id"`
	VehicleID      string    `json:"vehicle_id"`
	TravelDate     time.Time `json:"travel_date"`
	Destination    string    `json:"destination"`
	PassengerCount int       `json:"passenger_count"`
	Purpose        string    `json:"purpose"`
	DriverID       string    `json:"driver_id,omitempty"`
}

func (d TransportDetail) Kind() Type       { return TypeTransport }
func (d TransportDetail) DetailID() string { return d.ID }

type BorrowDetail struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	Quantity   int        `json:"quantity"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate time.Time  `json:"return_date"`
	Purpose    string     `json:"purpose"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func (d BorrowDetail) Kind() Type       { return TypeReturnable }
func (d BorrowDetail) DetailID() string { return d.ID }

type SupplyDetail struct {
	ID       string     `json:"id"`
	ItemID   string     `json:"item_id"`
	Quantity int        `json:"quantity"`
	NeededBy *time.Time `json:"needed_by,omitempty"`
	Purpose  string     `json:"purpose"`
}

func (d SupplyDetail) Kind() Type       { return TypeSupply }
func (d SupplyDetail) DetailID() string { return d.ID }
