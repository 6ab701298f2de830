package aoistore

import (
	"time"

	"gcghub/apperrors"
)

// AddActionItem appends a nested action item to the AOI. Empty statuses
// default to PENDING.
func (s *Store) AddActionItem(aoiID string, item ActionItem) (*AOI, error) {
	if item.Description == "" {
		return nil, apperrors.New(apperrors.Validation, "Description is required")
	}
	if item.Status == "" {
		item.Status = StatusPending
	}
	if !ValidActionItemStatus(item.Status) {
		return nil, apperrors.Newf(apperrors.Validation, "Invalid action item status: %s", item.Status)
	}
	item.ID = newID()
	if item.Status == StatusCompleted && item.CompletedAt == nil {
		now := time.Now()
		item.CompletedAt = &now
	}

	s.mu.Lock()
	aoi, err := s.mutateActionItems(aoiID, func(items []ActionItem) ([]ActionItem, error) {
		return append(items, item), nil
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(Event{Op: "updated", ID: aoi.ID, AOI: aoi})
	return aoi, nil
}

// ActionItemUpdate carries the mutable action item fields.
type ActionItemUpdate struct {
	Description *string
	AssignedTo  *string
	DueDate     *time.Time
	Status      *string
}

// UpdateActionItem mutates one nested item. Moving an item into COMPLETED
// stamps CompletedAt; moving it back out clears the stamp.
func (s *Store) UpdateActionItem(aoiID, itemID string, req ActionItemUpdate) (*AOI, error) {
	if req.Status != nil && !ValidActionItemStatus(*req.Status) {
		return nil, apperrors.Newf(apperrors.Validation, "Invalid action item status: %s", *req.Status)
	}

	s.mu.Lock()
	aoi, err := s.mutateActionItems(aoiID, func(items []ActionItem) ([]ActionItem, error) {
		for i := range items {
			if items[i].ID != itemID {
				continue
			}
			if req.Description != nil {
				items[i].Description = *req.Description
			}
			if req.AssignedTo != nil {
				items[i].AssignedTo = *req.AssignedTo
			}
			if req.DueDate != nil {
				items[i].DueDate = req.DueDate
			}
			if req.Status != nil {
				switch {
				case *req.Status == StatusCompleted && items[i].Status != StatusCompleted:
					now := time.Now()
					items[i].CompletedAt = &now
				case *req.Status != StatusCompleted:
					items[i].CompletedAt = nil
				}
				items[i].Status = *req.Status
			}
			return items, nil
		}
		return nil, apperrors.New(apperrors.NotFound, "Action item not found")
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(Event{Op: "updated", ID: aoi.ID, AOI: aoi})
	return aoi, nil
}

func (s *Store) DeleteActionItem(aoiID, itemID string) (*AOI, error) {
	s.mu.Lock()
	aoi, err := s.mutateActionItems(aoiID, func(items []ActionItem) ([]ActionItem, error) {
		for i := range items {
			if items[i].ID == itemID {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperrors.New(apperrors.NotFound, "Action item not found")
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(Event{Op: "updated", ID: aoi.ID, AOI: aoi})
	return aoi, nil
}

func (s *Store) mutateActionItems(aoiID string, mutate func([]ActionItem) ([]ActionItem, error)) (*AOI, error) {
	aoi, err := s.get(aoiID)
	if err != nil {
		return nil, err
	}
	items, err := mutate(aoi.ActionItems)
	if err != nil {
		return nil, err
	}
	aoi.ActionItems = items
	aoi.UpdatedAt = time.Now()
	if err := s.save(aoi); err != nil {
		return nil, err
	}
	return aoi, nil
}
