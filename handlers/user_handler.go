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

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.UserFilter{
		Role:           queryString(r, "role"),
		Directorate:    queryString(r, "directorate"),
		SubDirectorate: queryString(r, "sub_directorate"),
		Search:         queryString(r, "search"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.service.List(ctx, filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, users, len(users))
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.GetByID(ctx, identity, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "User retrieved successfully", user, http.StatusOK)
}

// Profile returns the caller's own user record.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.GetByID(ctx, identity, identity.ID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Profile retrieved successfully", user, http.StatusOK)
}

// UpdateProfile updates the caller's own user record.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req service.UpdateUserRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Update(ctx, identity, identity.ID, req)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Profile updated successfully", user, http.StatusOK)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req service.UpdateUserRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Update(ctx, identity, id, req)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "User updated successfully", user, http.StatusOK)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, identity, id); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "User deleted successfully", http.StatusOK)
}
