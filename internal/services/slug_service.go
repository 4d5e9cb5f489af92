package services

import (
	"errors"
	"time"

	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"
)

// SlugReservationWindow is how long a RESERVED slug stays unavailable. A
// reservation older than this is treated as implicitly available by readers
// even though the row persists (soft expiry, evaluated lazily at read time).
const SlugReservationWindow = 24 * time.Hour

// Availability is the result of a slug availability check.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// SlugService is the reservation ledger for storefront slugs. Availability
// is a read-only computed answer; reservations are only ever created inside
// the signup transaction through the repository.
type SlugService struct {
	slugRepo repositories.StoreSlugRepository
}

// NewSlugService creates a new SlugService.
func NewSlugService(slugRepo repositories.StoreSlugRepository) *SlugService {
	return &SlugService{
		slugRepo: slugRepo,
	}
}

// CheckAvailability reports whether a slug can be claimed right now.
// RESERVED rows past the reservation window count as available; the stale
// row is not deleted, merely ignored by this check. Note that Reserve does
// not honor the expiry window, so an expired-but-present slug reads as
// available here yet still conflicts on signup.
func (s *SlugService) CheckAvailability(slug string) (*Availability, error) {
	row, err := s.slugRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &Availability{Available: true, Message: "Slug is available"}, nil
		}
		return nil, err
	}

	switch row.Status {
	case models.SlugReleased:
		return &Availability{Available: true, Message: "Slug is available"}, nil
	case models.SlugActive:
		return &Availability{Available: false, Message: "Slug is already in use"}, nil
	case models.SlugReserved:
		if s.isExpired(row) {
			return &Availability{Available: true, Message: "Slug is available"}, nil
		}
		return &Availability{Available: false, Message: "Slug is reserved. Please try again later"}, nil
	}
	return &Availability{Available: false, Message: "Slug is unavailable"}, nil
}

func (s *SlugService) isExpired(row *models.StoreSlug) bool {
	return time.Since(row.ReservedAt) > SlugReservationWindow
}
