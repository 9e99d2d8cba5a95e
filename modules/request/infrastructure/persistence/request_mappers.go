package persistence

import (
	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/infrastructure/persistence/models"
)

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainRequest(row models.Request, detail request.Detail) request.Request {
	return request.Hydrate(
		row.ID,
		row.Title,
		row.Description,
		request.Type(row.Type),
		request.Priority(row.Priority),
		request.Status(row.Status),
		row.RequesterID,
		row.DepartmentID,
		derefStr(row.CancelReason),
		detail,
		row.CreatedAt,
		row.UpdatedAt,
		row.CompletedAt,
	)
}

func toDomainJob(row models.JobRequest) request.JobDetail {
	return request.JobDetail{
		ID:             row.ID,
		JobType:        row.JobType,
		Description:    row.Description,
		DueDate:        row.DueDate,
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		AssigneeID:     derefStr(row.AssigneeID),
		ReviewerID:     derefStr(row.ReviewerID),
		ApproverID:     derefStr(row.ApproverID),
		RejectionCount: row.RejectionCount,
		Verified:       row.Verified,
		CostEstimate:   row.CostEstimate,
		ActualCost:     row.ActualCost,
	}
}

func toDomainVenue(row models.VenueRequest) request.VenueDetail {
	return request.VenueDetail{
		ID:                row.ID,
		VenueID:           row.VenueID,
		EventDate:         row.EventDate,
		StartTime:         row.StartTime,
		EndTime:           row.EndTime,
		ExpectedAttendees: row.ExpectedAttendees,
		Purpose:           row.Purpose,
	}
}

func toDomainTransport(row models.TransportRequest) request.TransportDetail {
	return request.TransportDetail{
		ID:             row.ID,
		VehicleID:      row.VehicleID,
		TravelDate:     row.TravelDate,
		Destination:    row.Destination,
		PassengerCount: row.PassengerCount,
		Purpose:        row.Purpose,
		DriverID:       derefStr(row.DriverID),
	}
}

func toDomainBorrow(row models.BorrowRequest) request.BorrowDetail {
	return request.BorrowDetail{
		ID:         row.ID,
		ItemID:     row.ItemID,
		Quantity:   row.Quantity,
		BorrowDate: row.BorrowDate,
		ReturnDate: row.ReturnDate,
		Purpose:    row.Purpose,
		ReturnedAt: row.ReturnedAt,
	}
}

func toDomainSupply(row models.SupplyRequest) request.SupplyDetail {
	return request.SupplyDetail{
		ID:       row.ID,
		ItemID:   row.ItemID,
		Quantity: row.Quantity,
		NeededBy: row.NeededBy,
		Purpose:  row.Purpose,
	}
}
