package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// PositionUpdate names one entity and the position it should move to.
type PositionUpdate struct {
	ID       string `json:"id" validate:"required"`
	Position int    `json:"position" validate:"min=0"`
}

// positioned is implemented by every model that lives in a position-ordered
// sibling set (store sections, store pages, page blocks, creator products).
type positioned interface {
	EntityID() string
	ParentID() string
	GetPosition() int
	SetPosition(int)
}

// orderedSet bundles the position queries shared by every ordered sibling
// collection. parentColumn is the column holding the owning side of the set.
type orderedSet[T any, P interface {
	positioned
	*T
}] struct {
	parentColumn string
}

// nextPosition returns max sibling position + 1, or 0 for an empty parent.
// The read-then-write window on append is accepted; position collisions
// between concurrent appends are caller-visible but harmless gaps/dupes.
func (o orderedSet[T, P]) nextPosition(db *gorm.DB, parentID string) (int, error) {
	var last T
	err := db.Where(o.parentColumn+" = ?", parentID).Order("position DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read max position for %s %s: %w", o.parentColumn, parentID, err)
	}
	return P(&last).GetPosition() + 1, nil
}

// listByParent returns all siblings ordered ascending by position, with
// creation time as the deterministic tie-break.
func (o orderedSet[T, P]) listByParent(db *gorm.DB, parentID string) ([]T, error) {
	var siblings []T
	err := db.Where(o.parentColumn+" = ?", parentID).
		Order("position ASC, created_at ASC").
		Find(&siblings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list by %s %s: %w", o.parentColumn, parentID, err)
	}
	return siblings, nil
}

// reorder applies a batch of position updates in one transaction. Every
// entry must exist and belong to parentID; the first violation aborts the
// whole batch (unknown id -> ErrNotFound, foreign parent -> mismatchErr)
// and no position is changed. Entries may cover only a subset of the
// siblings; positions of unmentioned siblings are left untouched.
func (o orderedSet[T, P]) reorder(db *gorm.DB, parentID string, moves []PositionUpdate, mismatchErr error) ([]T, error) {
	updated := make([]T, 0, len(moves))
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, move := range moves {
			var sibling T
			if err := tx.First(&sibling, "id = ?", move.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: entity %s", ErrNotFound, move.ID)
				}
				return fmt.Errorf("failed to load entity %s: %w", move.ID, err)
			}
			entry := P(&sibling)
			if entry.ParentID() != parentID {
				return fmt.Errorf("%w: entity %s", mismatchErr, move.ID)
			}
			entry.SetPosition(move.Position)
			if err := tx.Model(&sibling).Update("position", move.Position).Error; err != nil {
				return fmt.Errorf("failed to update position of %s: %w", move.ID, err)
			}
			updated = append(updated, sibling)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
