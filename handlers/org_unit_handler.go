package handlers

import (
	"context"
	"net/http"
	"time"

	"gcghub/models"
	service "gcghub/services"
	"gcghub/utils"
)

type OrgUnitHandler struct {
	service service.OrgUnitService
}

func NewOrgUnitHandler(service service.OrgUnitService) *OrgUnitHandler {
	return &OrgUnitHandler{
		service: service,
	}
}

func (h *OrgUnitHandler) List(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}
	filter := models.OrgUnitFilter{
		Year:           year,
		Directorate:    queryString(r, "directorate"),
		SubDirectorate: queryString(r, "sub_directorate"),
		Division:       queryString(r, "division"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	units, err := h.service.List(ctx, filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, units, len(units))
}

func (h *OrgUnitHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid unit ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	unit, err := h.service.GetByID(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Organizational unit retrieved successfully", unit, http.StatusOK)
}

func (h *OrgUnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var unit models.OrgUnit
	if err := utils.DecodeAndValidate(w, r, &unit); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, &unit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Organizational unit created successfully", created, http.StatusCreated)
}

func (h *OrgUnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid unit ID format", http.StatusBadRequest)
		return
	}

	var unit models.OrgUnit
	if err := utils.DecodeAndValidate(w, r, &unit); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := h.service.Update(ctx, id, &unit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Organizational unit updated successfully", updated, http.StatusOK)
}

func (h *OrgUnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid unit ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Organizational unit deleted successfully", http.StatusOK)
}

func (h *OrgUnitHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid unit ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	unit, assignments, err := h.service.Assignments(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	payload := map[string]interface{}{
		"unit":        unit,
		"assignments": assignments,
	}
	utils.HandleDataResponse(w, "Unit assignments retrieved successfully", payload, http.StatusOK)
}

func (h *OrgUnitHandler) Stats(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.Stats(ctx, year)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Unit statistics retrieved successfully", stats, http.StatusOK)
}
