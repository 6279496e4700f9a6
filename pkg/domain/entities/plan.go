package entities

import "fmt"

// PlanItem requests a production quantity of one recipe
type PlanItem struct {
	RecipeID RecipeID `json:"recipe_id"`
	Quantity float64  `json:"quantity"`
}

// NewPlanItem creates a validated PlanItem
func NewPlanItem(recipeID RecipeID, quantity float64) (*PlanItem, error) {
	if string(recipeID) == "" {
		return nil, fmt.Errorf("recipe id cannot be empty")
	}
	if !isFinite(quantity) || quantity <= 0 {
		return nil, fmt.Errorf("production quantity must be positive, got %g", quantity)
	}
	return &PlanItem{RecipeID: recipeID, Quantity: quantity}, nil
}

// Resolution is the output of resolving one recipe at a production quantity
type Resolution struct {
	RecipeID         RecipeID      `json:"recipe_id"`
	Masses           *Requirements `json:"masses"`
	ScaleFactor      float64       `json:"scale_factor"`
	AdjustmentFactor float64       `json:"adjustment_factor"`
	// Unadjusted is set for percentage recipes without a positive unit
	// weight. AdjustmentFactor is then 1, not 0, so the masses are the
	// nominal percentages of the base mass and the base lines still sum to it.
	Unadjusted bool `json:"unadjusted,omitempty"`
	// Underspecified is set when the theoretical total mass was zero and the
	// adjustment fell back to 1.
	Underspecified bool `json:"underspecified,omitempty"`
}
