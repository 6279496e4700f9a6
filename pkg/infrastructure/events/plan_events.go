package events

import (
	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

const (
	PlanResolvedEvent         = "plan.resolved"
	StockShortageEvent        = "stock.shortage"
	RecipeUnderspecifiedEvent = "recipe.underspecified"
)

// PlanResolved is appended once per successful planning run
type PlanResolved struct {
	PlanID          string              `json:"plan_id"`
	Items           []entities.PlanItem `json:"items"`
	IngredientCount int                 `json:"ingredient_count"`
	TotalGrams      float64             `json:"total_grams"`
	Sufficient      bool                `json:"sufficient"`
}

// StockShortage is appended for every insufficient or unknown stock line
type StockShortage struct {
	PlanID string             `json:"plan_id"`
	Line   entities.StockLine `json:"line"`
}

// RecipeUnderspecified flags a percentage recipe resolved without a real
// adjustment factor.
type RecipeUnderspecified struct {
	PlanID         string            `json:"plan_id"`
	RecipeID       entities.RecipeID `json:"recipe_id"`
	Unadjusted     bool              `json:"unadjusted"`
	Underspecified bool              `json:"underspecified"`
}

func NewPlanResolvedEvent(planID string, items []entities.PlanItem, required *entities.Requirements, sufficient bool) Event {
	return NewEvent(PlanResolvedEvent, planID, PlanResolved{
		PlanID:          planID,
		Items:           items,
		IngredientCount: required.Len(),
		TotalGrams:      required.TotalGrams(),
		Sufficient:      sufficient,
	})
}

func NewStockShortageEvent(planID string, line entities.StockLine) Event {
	return NewEvent(StockShortageEvent, string(line.IngredientID), StockShortage{PlanID: planID, Line: line})
}

func NewRecipeUnderspecifiedEvent(planID string, resolution *entities.Resolution) Event {
	return NewEvent(RecipeUnderspecifiedEvent, string(resolution.RecipeID), RecipeUnderspecified{
		PlanID:         planID,
		RecipeID:       resolution.RecipeID,
		Unadjusted:     resolution.Unadjusted,
		Underspecified: resolution.Underspecified,
	})
}
