package handlers

import (
	"context"
	"net/http"
	"time"

	"gcghub/models"
	service "gcghub/services"
	"gcghub/utils"
)

type AspectHandler struct {
	service service.AspectService
}

func NewAspectHandler(service service.AspectService) *AspectHandler {
	return &AspectHandler{
		service: service,
	}
}

func (h *AspectHandler) List(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}
	filter := models.AspectFilter{
		Year:   year,
		Search: queryString(r, "search"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	aspects, err := h.service.List(ctx, filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, aspects, len(aspects))
}

func (h *AspectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid aspect ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	aspect, err := h.service.GetByID(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Aspect retrieved successfully", aspect, http.StatusOK)
}

func (h *AspectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var aspect models.Aspect
	if err := utils.DecodeAndValidate(w, r, &aspect); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &aspect)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Aspect created successfully", created, http.StatusCreated)
}

func (h *AspectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid aspect ID format", http.StatusBadRequest)
		return
	}

	var req struct {
		Name string `json:"name" validate:"required"`
		Year int    `json:"year" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	aspect, err := h.service.Update(ctx, id, req.Name, req.Year)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Aspect updated successfully", aspect, http.StatusOK)
}

func (h *AspectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid aspect ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Aspect deleted successfully", http.StatusOK)
}

func (h *AspectHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid aspect ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	aspect, items, err := h.service.Checklist(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	payload := map[string]interface{}{
		"aspect":    aspect,
		"checklist": items,
	}
	utils.HandleDataResponse(w, "Aspect checklist retrieved successfully", payload, http.StatusOK)
}
