package main

import (
	"net/http"

	"go.uber.org/zap"

	"watchman/config"
	"watchman/db"
	"watchman/db/postgres"
	"watchman/handlers"
	"watchman/repository"
	"watchman/routes"
)

func main() {
	cfg := config.LoadConfig()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db.RunMigrations()

	pg := postgres.NewPostgresDB(cfg.PostgresURL)
	if err := pg.Connect(); err != nil {
		log.Fatal("cannot connect to postgres", zap.Error(err))
	}
	defer pg.Disconnect()

	nfeRepo := repository.NewPostgresNFeRepo(pg.Conn, log)
	userRepo := repository.NewPostgresUserRepo(pg.Conn)

	userHandler := &handlers.UserHandler{Repo: userRepo}
	nfeHandler := &handlers.NFeHandler{Repo: nfeRepo}
	uploadHandler := &handlers.UploadHandler{UploadDir: cfg.UploadFolder, Log: log}
	pdfHandler := &handlers.PDFHandler{Repo: nfeRepo, SavePath: cfg.PDFFolder}

	routes.SetupRoutes(log, userHandler, nfeHandler, uploadHandler, pdfHandler)

	log.Info("server running", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
