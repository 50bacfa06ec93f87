package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"watchman/config"
	"watchman/db"
	"watchman/db/mongo"
	"watchman/db/postgres"
	"watchman/parser"
	"watchman/processor"
	"watchman/repository"
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

	var archive repository.ArchiveRepository
	if cfg.MongoURL != "" {
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			log.Fatal("cannot connect to mongo", zap.Error(err))
		}
		defer mg.Disconnect()
		archive = repository.NewMongoArchiveRepo(mg.Client)
	}

	nfeRepo := repository.NewPostgresNFeRepo(pg.Conn, log)
	statusRepo := repository.NewPostgresStatusRepo(pg.Conn)
	extractor := parser.NewExtractor(log)

	proc := processor.New(extractor, nfeRepo, statusRepo, archive,
		cfg.SourceFolder, cfg.DestFolder, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	proc.Run(ctx, cfg.PollInterval, cfg.WorkerCount)
}
