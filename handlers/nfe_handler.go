package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"watchman/models"
	"watchman/repository"
)

type NFeHandler struct {
	Repo repository.NFeRepository
}

// GetAllNFe lists invoice summaries, newest first.
func (h *NFeHandler) GetAllNFe(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListarResumos(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*models.NFeResumo{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetNFeByIdentifier resolves the path segment as either a surrogate id or
// a 44-digit access key and returns the full nested document.
func (h *NFeHandler) GetNFeByIdentifier(w http.ResponseWriter, r *http.Request, identifier string) {
	var nf *models.NotaFiscal
	var err error

	if len(identifier) == 44 {
		nf, err = h.Repo.BuscarPorChaveAcesso(r.Context(), identifier)
	} else {
		id, parseErr := strconv.ParseInt(identifier, 10, 64)
		if parseErr != nil {
			http.Error(w, "invalid nfe identifier", http.StatusBadRequest)
			return
		}
		nf, err = h.Repo.BuscarPorID(r.Context(), id)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if nf == nil {
		http.Error(w, "NF-e not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(nf)
}
