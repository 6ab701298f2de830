package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "gcghub/middlewares"
	"gcghub/models"
	service "gcghub/services"
	"gcghub/utils"
)

type ChecklistHandler struct {
	service service.ChecklistService
}

func NewChecklistHandler(service service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		service: service,
	}
}

func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}
	filter := models.ChecklistFilter{
		Year:   year,
		Aspect: queryString(r, "aspect"),
		Search: queryString(r, "search"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, items, len(items))
}

func (h *ChecklistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid checklist ID format", http.StatusBadRequest)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	item, err := h.service.GetByID(ctx, identity, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Checklist item retrieved successfully", item, http.StatusOK)
}

func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item models.ChecklistItem
	if err := utils.DecodeAndValidate(w, r, &item); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &item)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Checklist item created successfully", created, http.StatusCreated)
}

func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid checklist ID format", http.StatusBadRequest)
		return
	}

	var req struct {
		Aspect      string `json:"aspect" validate:"required"`
		Description string `json:"description" validate:"required"`
		Year        int    `json:"year" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req.Aspect, req.Description, req.Year)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Checklist item updated successfully", item, http.StatusOK)
}

func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid checklist ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Checklist item deleted successfully", http.StatusOK)
}

func (h *ChecklistHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid checklist ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status, err := h.service.Status(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Checklist status retrieved successfully", status, http.StatusOK)
}
