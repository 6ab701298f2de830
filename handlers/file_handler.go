package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	middleware "gcghub/middlewares"
	"gcghub/models"
	service "gcghub/services"
	"gcghub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FileHandler struct {
	service     service.FileService
	maxFileSize int64
}

func NewFileHandler(service service.FileService, maxFileSize int64) *FileHandler {
	return &FileHandler{
		service:     service,
		maxFileSize: maxFileSize,
	}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.HandleMessageResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1024*1024)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		utils.HandleMessageResponse(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.HandleMessageResponse(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	checklistID, err := primitive.ObjectIDFromHex(r.FormValue("checklist_id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid checklist ID format", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid year format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	record, err := h.service.Upload(ctx, service.UploadRequest{
		ChecklistID:  checklistID,
		Year:         year,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
		UploadedBy:   identity.ID,
		UploaderName: identity.Name,
	})
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "File uploaded successfully", record, http.StatusCreated)
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
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
	uploadedBy, ok := queryObjectID(r, "uploaded_by")
	if !ok {
		utils.HandleMessageResponse(w, "Invalid uploader ID format", http.StatusBadRequest)
		return
	}
	filter := models.FileFilter{
		Year:        year,
		ChecklistID: checklistID,
		UploadedBy:  uploadedBy,
		Search:      queryString(r, "search"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := h.service.List(ctx, filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleListResponse(w, records, len(records))
}

func (h *FileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	record, err := h.service.GetRecord(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.HandleDataResponse(w, "File retrieved successfully", record, http.StatusOK)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	record, stream, err := h.service.Download(ctx, id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", record.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(record.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.OriginalName))
	io.Copy(w, stream)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
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

	utils.HandleMessageResponse(w, "File deleted successfully", http.StatusOK)
}

func (h *FileHandler) Stats(w http.ResponseWriter, r *http.Request) {
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

	utils.HandleDataResponse(w, "File statistics retrieved successfully", stats, http.StatusOK)
}
