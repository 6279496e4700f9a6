package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/bakeplan/pkg/application/services"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	domain "github.com/vsinha/bakeplan/pkg/domain/services"
)

type handlers struct {
	planner     *services.PlanningService
	recipes     repositories.RecipeRepository
	ingredients repositories.IngredientRepository
}

type resolveRequest struct {
	Recipe   *entities.Recipe `json:"recipe" binding:"required"`
	Quantity float64          `json:"quantity"`
}

type stockCheckRequest struct {
	Required    *entities.Requirements `json:"required" binding:"required"`
	Ingredients []*entities.Ingredient `json:"ingredients"`
}

type stockCheckResponse struct {
	Lines      []entities.StockLine `json:"lines"`
	Sufficient bool                 `json:"sufficient"`
}

type planRequest struct {
	Items []*entities.PlanItem `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resolution, err := domain.ResolveIngredientMasses(req.Recipe, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}

func (h *handlers) stockCheck(c *gin.Context) {
	var req stockCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ingredients := req.Ingredients
	if len(ingredients) == 0 && h.ingredients != nil {
		var err error
		ingredients, err = h.ingredients.GetIngredients(req.Required.IDs())
		if err != nil {
			writeError(c, err)
			return
		}
	}

	lines, err := domain.CheckStockSufficiency(req.Required, ingredients)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stockCheckResponse{Lines: lines, Sufficient: domain.AllSufficient(lines)})
}

func (h *handlers) plan(c *gin.Context) {
	if h.planner == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "no catalog configured"})
		return
	}

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.planner.PlanProduction(c.Request.Context(), req.Items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) listRecipes(c *gin.Context) {
	if h.recipes == nil {
		c.JSON(http.StatusOK, []*entities.Recipe{})
		return
	}
	recipes, err := h.recipes.GetAllRecipes()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *handlers) getRecipe(c *gin.Context) {
	if h.recipes == nil {
		writeError(c, entities.ErrNotFound)
		return
	}
	recipe, err := h.recipes.GetRecipe(entities.RecipeID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *handlers) listIngredients(c *gin.Context) {
	if h.ingredients == nil {
		c.JSON(http.StatusOK, []*entities.Ingredient{})
		return
	}
	ingredients, err := h.ingredients.GetAllIngredients()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrMalformedRecipe):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	c.JSON(status, errorResponse{Error: err.Error()})
}
