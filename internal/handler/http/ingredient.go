package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/ingredient"
	"github.com/brewlane/cafe-backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type IngredientHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	AdjustStock(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ingredientHandlerImpl struct {
	ingredientService ingredient.IngredientService
}

func NewIngredientHandler(ingredientService ingredient.IngredientService) IngredientHandler {
	return &ingredientHandlerImpl{
		ingredientService: ingredientService,
	}
}

// Create implements IngredientHandler
func (h *ingredientHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req ingredient.CreateIngredientRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create ingredient decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ingredientService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ingredient created successfully", result)
}

// Update implements IngredientHandler
func (h *ingredientHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req ingredient.UpdateIngredientRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update ingredient decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ingredientService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ingredient updated successfully", result)
}

// AdjustStock implements IngredientHandler
func (h *ingredientHandlerImpl) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req ingredient.AdjustStockRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Adjust stock decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ingredientService.AdjustStock(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Stock adjusted successfully", result)
}

// Get implements IngredientHandler
func (h *ingredientHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Ingredient ID is required", nil)
		return
	}

	result, err := h.ingredientService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements IngredientHandler
func (h *ingredientHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.ingredientService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements IngredientHandler
func (h *ingredientHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Ingredient ID is required", nil)
		return
	}

	if err := h.ingredientService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ingredient deleted successfully", nil)
}
