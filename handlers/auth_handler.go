package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "gcghub/middlewares"
	service "gcghub/services"
	"gcghub/utils"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, identity, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Login successful", map[string]interface{}{
		"token": token,
		"user":  identity,
	}, http.StatusOK)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Register(ctx, req)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "User created successfully", user, http.StatusCreated)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
		return
	}

	utils.HandleDataResponse(w, "Current user retrieved successfully", identity, http.StatusOK)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.ChangePassword(ctx, identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Password changed successfully", http.StatusOK)
}

func (h *AuthHandler) ValidatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	strength, valid := utils.CheckPassword(req.Password)

	utils.HandleDataResponse(w, "Password validated", map[string]interface{}{
		"valid":    valid,
		"strength": strength,
	}, http.StatusOK)
}

func (h *AuthHandler) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	password, err := utils.GeneratePassword()
	if err != nil {
		utils.HandleMessageResponse(w, "Failed to generate password", http.StatusInternalServerError)
		return
	}

	strength, _ := utils.CheckPassword(password)

	utils.HandleDataResponse(w, "Password generated successfully", map[string]interface{}{
		"password": password,
		"strength": strength,
	}, http.StatusOK)
}
