package memory

import (
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// PlanRepository provides in-memory production plan storage
type PlanRepository struct {
	items []entities.PlanItem
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{
		items: []entities.PlanItem{},
	}
}

// Verify interface compliance
var _ repositories.PlanRepository = (*PlanRepository)(nil)

// LoadPlanItems loads plan items into the repository
func (r *PlanRepository) LoadPlanItems(items []*entities.PlanItem) error {
	for _, item := range items {
		r.items = append(r.items, *item)
	}
	return nil
}

// GetPlanItems returns all plan items
func (r *PlanRepository) GetPlanItems() ([]*entities.PlanItem, error) {
	var items []*entities.PlanItem
	for i := range r.items {
		items = append(items, &r.items[i])
	}
	return items, nil
}
