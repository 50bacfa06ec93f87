package routes

import (
	"net/http"

	"go.uber.org/zap"

	"watchman/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	log *zap.Logger,
	userHandler *handlers.UserHandler,
	nfeHandler *handlers.NFeHandler,
	uploadHandler *handlers.UploadHandler,
	pdfHandler *handlers.PDFHandler,
) {
	// User routes
	http.Handle("/signup", withCORS(http.HandlerFunc(handlers.RecoverWrapper(log, userHandler.Signup))))
	http.Handle("/login", withCORS(http.HandlerFunc(handlers.RecoverWrapper(log, userHandler.Login))))

	// Upload route
	http.Handle("/nota-fiscal", withCORS(http.HandlerFunc(handlers.RecoverWrapper(log, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		uploadHandler.UploadNFe(w, r)
	}))))

	// DANFE PDF route
	http.Handle("/nfe/danfe", withCORS(http.HandlerFunc(handlers.RecoverWrapper(log, pdfHandler.DANFE))))

	// NF-e listing
	http.Handle("/nfe", withCORS(http.HandlerFunc(handlers.RecoverWrapper(log, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		nfeHandler.GetAllNFe(w, r)
	}))))

	// Get NF-e by id or access key
	http.Handle("/nfe/", withCORS(http.HandlerFunc(handlers.RecoverWrapper(log, func(w http.ResponseWriter, r *http.Request) {
		identifier := r.URL.Path[len("/nfe/"):]
		if identifier != "" {
			nfeHandler.GetNFeByIdentifier(w, r, identifier)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))))
}
