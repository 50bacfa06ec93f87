package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type UploadHandler struct {
	UploadDir string
	Log       *zap.Logger
}

// UploadNFe receives one XML file in the multipart field "nota_fiscal" and
// drops it into the upload folder for the worker to pick up.
func (h *UploadHandler) UploadNFe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid multipart payload: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("nota_fiscal")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Field 'nota_fiscal' is required",
		})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Empty filename",
		})
		return
	}

	if err := os.MkdirAll(h.UploadDir, os.ModePerm); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to create upload directory: " + err.Error(),
		})
		return
	}

	filename := filepath.Base(header.Filename)
	destPath := filepath.Join(h.UploadDir, filename)

	dest, err := os.Create(destPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to save file: " + err.Error(),
		})
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to save file: " + err.Error(),
		})
		return
	}

	h.Log.Info("nfe uploaded", zap.String("filename", filename))

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: fmt.Sprintf("File %s received", filename),
		Data:    map[string]string{"filename": filename, "path": destPath},
	})
}
