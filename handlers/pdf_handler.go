package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"watchman/repository"
	"watchman/utils"
)

type PDFHandler struct {
	Repo     repository.NFeRepository
	SavePath string
}

// DANFE handles the API request to generate and save a DANFE PDF
func (h *PDFHandler) DANFE(w http.ResponseWriter, r *http.Request) {
	nfeIDStr := r.URL.Query().Get("id")
	if nfeIDStr == "" {
		http.Error(w, "missing nfe id", http.StatusBadRequest)
		return
	}

	nfeID, err := strconv.ParseInt(nfeIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid nfe id", http.StatusBadRequest)
		return
	}

	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		http.Error(w, "failed to create save directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	pdfBytes, err := utils.GenerateDANFEPDF(h.Repo, nfeID)
	if err != nil {
		http.Error(w, "failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pdfBytes) == 0 {
		http.Error(w, "NF-e not found", http.StatusNotFound)
		return
	}

	filename := fmt.Sprintf("danfe_%d_%d.pdf", nfeID, time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)

	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		http.Error(w, "failed to save PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"success":true,"file":"%s"}`, filename)))
}
