package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "gcghub/middlewares"
	"gcghub/models"
	service "gcghub/services"
	"gcghub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentHandler struct {
	service service.AssignmentService
}

func NewAssignmentHandler(service service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
	}
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}
	checklistID, ok := queryObjectID(r, "checklist_id")
	if !ok {
		utils.HandleMessageResponse(w, "Invalid checklist ID format", http.StatusBadRequest)
		return
	}
	unitID, ok := queryObjectID(r, "unit_id")
	if !ok {
		utils.HandleMessageResponse(w, "Invalid unit ID format", http.StatusBadRequest)
		return
	}
	filter := models.AssignmentFilter{
		Year:        year,
		ChecklistID: checklistID,
		UnitID:      unitID,
		Status:      queryString(r, "status"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assignments, err := h.service.List(ctx, filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, assignments, len(assignments))
}

func (h *AssignmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid assignment ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assignment, err := h.service.GetByID(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Assignment retrieved successfully", assignment, http.StatusOK)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ChecklistID string     `json:"checklist_id" validate:"required"`
		UnitID      string     `json:"unit_id" validate:"required"`
		DueDate     *time.Time `json:"due_date"`
		Notes       string     `json:"notes"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	checklistID, err := primitive.ObjectIDFromHex(req.ChecklistID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid checklist ID format", http.StatusBadRequest)
		return
	}
	unitID, err := primitive.ObjectIDFromHex(req.UnitID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid unit ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assignment, err := h.service.Create(ctx, service.CreateAssignmentRequest{
		ChecklistID: checklistID,
		UnitID:      unitID,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		AssignedBy:  identity.ID,
	})
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Assignment created successfully", assignment, http.StatusCreated)
}

func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid assignment ID format", http.StatusBadRequest)
		return
	}

	var req struct {
		Status  *string    `json:"status"`
		DueDate *time.Time `json:"due_date"`
		Notes   *string    `json:"notes"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assignment, err := h.service.Update(ctx, id, req.Status, req.DueDate, req.Notes)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Assignment updated successfully", assignment, http.StatusOK)
}

func (h *AssignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid assignment ID format", http.StatusBadRequest)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assignment, err := h.service.UpdateStatus(ctx, identity, id, req.Status)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Assignment status updated successfully", assignment, http.StatusOK)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid assignment ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Assignment deleted successfully", http.StatusOK)
}

func (h *AssignmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
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

	utils.HandleDataResponse(w, "Assignment statistics retrieved successfully", stats, http.StatusOK)
}
