package repositories

import "github.com/vsinha/bakeplan/pkg/domain/entities"

// PlanRepository provides access to the production plan being worked on
type PlanRepository interface {
	GetPlanItems() ([]*entities.PlanItem, error)
	LoadPlanItems(items []*entities.PlanItem) error
}
