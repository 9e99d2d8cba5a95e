package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Request struct {
	ID           string
	Title        string
	Description  string
	Type         string
	Priority     string
	Status       string
	RequesterID  string
	DepartmentID string
	CancelReason *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

type JobRequest struct {
	ID             string
	RequestID      string
	JobType        string
	Description    string
	DueDate        *time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	AssigneeID     *string
	ReviewerID     *string
	ApproverID     *string
	RejectionCount int
	Verified       bool
	CostEstimate   decimal.Decimal
	ActualCost     decimal.Decimal
}

type VenueRequest struct {
	ID                string
	RequestID         string
	VenueID           string
	EventDate         time.Time
	StartTime         string
	EndTime           string
	ExpectedAttendees int
	Purpose           string
}

type TransportRequest struct {
	ID             string
	RequestID      string
	VehicleID      string
	TravelDate     time.Time
	Destination    string
	PassengerCount int
	Purpose        string
	DriverID       *string
}

type BorrowRequest struct {
	ID         string
	RequestID  string
	ItemID     string
	Quantity   int
	BorrowDate time.Time
	ReturnDate time.Time
	Purpose    string
	ReturnedAt *time.Time
}

type SupplyRequest struct {
	ID        string
	RequestID string
	ItemID    string
	Quantity  int
	NeededBy  *time.Time
	Purpose   string
}

type AuditLog struct {
	ID         int64
	RequestID  string
	ChangeType string
	ActorID    string
	OldValue   []byte
	NewValue   []byte
	CreatedAt  time.Time
}
