package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"gcghub/models"
	service "gcghub/services"
	"gcghub/utils"
)

type YearHandler struct {
	service service.YearService
}

func NewYearHandler(service service.YearService) *YearHandler {
	return &YearHandler{
		service: service,
	}
}

func pathYear(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.PathValue("year"))
	return year, err == nil
}

func (h *YearHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	years, err := h.service.List(ctx)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, years, len(years))
}

func (h *YearHandler) GetByYear(w http.ResponseWriter, r *http.Request) {
	yearNumber, ok := pathYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	detail, err := h.service.Detail(ctx, yearNumber)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Year retrieved successfully", detail, http.StatusOK)
}

func (h *YearHandler) Create(w http.ResponseWriter, r *http.Request) {
	var year models.Year
	if err := utils.DecodeAndValidate(w, r, &year); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &year)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Year created successfully", created, http.StatusCreated)
}

func (h *YearHandler) Update(w http.ResponseWriter, r *http.Request) {
	yearNumber, ok := pathYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := h.service.Update(ctx, yearNumber, req.Name, req.Description, req.IsActive)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Year updated successfully", updated, http.StatusOK)
}

func (h *YearHandler) Delete(w http.ResponseWriter, r *http.Request) {
	yearNumber, ok := pathYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, yearNumber); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Year deleted successfully", http.StatusOK)
}

func (h *YearHandler) Stats(w http.ResponseWriter, r *http.Request) {
	yearNumber, ok := pathYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.Stats(ctx, yearNumber)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Year statistics retrieved successfully", stats, http.StatusOK)
}
