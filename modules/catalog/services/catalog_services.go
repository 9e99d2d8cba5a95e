package services

import (
	"context"
	"errors"

	"github.com/campuskit/campuskit/modules/catalog/domain/entities/inventory"
	"github.com/campuskit/campuskit/modules/catalog/domain/entities/vehicle"
	"github.com/campuskit/campuskit/modules/catalog/domain/entities/venue"
)

type VenueService struct {
	repo venue.Repository
}

func NewVenueService(repo venue.Repository) *VenueService {
	return &VenueService{repo: repo}
}

func (s *VenueService) List(ctx context.Context, params *venue.FindParams) ([]venue.Venue, error) {
	return s.repo.List(ctx, params)
}

func (s *VenueService) GetByID(ctx context.Context, id string) (venue.Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VenueService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venue.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type VehicleService struct {
	repo vehicle.Repository
}

func NewVehicleService(repo vehicle.Repository) *VehicleService {
	return &VehicleService{repo: repo}
}

func (s *VehicleService) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *VehicleService) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type InventoryService struct {
	repo inventory.Repository
}

func NewInventoryService(repo inventory.Repository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) List(ctx context.Context, returnableOnly bool) ([]inventory.Item, error) {
	return s.repo.List(ctx, returnableOnly)
}

func (s *InventoryService) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// Exists treats LOST items as absent so new requests cannot reference them.
func (s *InventoryService) Exists(ctx context.Context, id string) (bool, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return item.Status() != inventory.StatusLost, nil
}
