package main

import (
	"fmt"
	"os"

	httpadapter "github.com/simaogato/dripsim-backend/internal/adapter/http"
	"github.com/simaogato/dripsim-backend/internal/adapter/repository/memory"
	"github.com/simaogato/dripsim-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/dripsim-backend/internal/config"
	"github.com/simaogato/dripsim-backend/internal/domain"
	"github.com/simaogato/dripsim-backend/internal/logger"
	"github.com/simaogato/dripsim-backend/internal/usecase/scenario"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)

	var repo domain.ScenarioRepository
	if cfg.UseInMemoryStore {
		log.Warn("DATABASE_URL not set, using in-memory scenario store. Data will reset on restart.")
		repo = memory.New()
	} else {
		db, err := postgres.NewDB(cfg.DBConnStr)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to postgres")
		}
		defer db.Close()
		if err := db.EnsureSchema(); err != nil {
			log.WithError(err).Fatal("failed to prepare database schema")
		}
		repo = postgres.NewScenarioRepository(db)
		log.Info("connected to postgres")
	}

	scenarioSvc := scenario.NewService(repo)
	router := httpadapter.Router(scenarioSvc, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infof("dripsim service listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
