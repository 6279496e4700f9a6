package dto

import (
	"time"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/services"
)

// PlanResult contains the complete output of a production planning run
type PlanResult struct {
	PlanID       string                  `json:"plan_id"`
	Items        []entities.PlanItem     `json:"items"`
	Resolutions  []*entities.Resolution  `json:"resolutions"`
	Requirements *entities.Requirements  `json:"requirements"`
	StockReport  []entities.StockLine    `json:"stock_report"`
	Sufficient   bool                    `json:"sufficient"`
	Cost         *services.CostBreakdown `json:"cost"`
	Warnings     []string                `json:"warnings,omitempty"`
	GeneratedAt  time.Time               `json:"generated_at"`
	Elapsed      time.Duration           `json:"-"`
}

// Shortages returns the stock lines that are not covered
func (r *PlanResult) Shortages() []entities.StockLine {
	var shortages []entities.StockLine
	for _, line := range r.StockReport {
		if !line.Sufficient {
			shortages = append(shortages, line)
		}
	}
	return shortages
}
