package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/achadosdoados/backend/internal/api"
	"github.com/achadosdoados/backend/internal/config"
	"github.com/achadosdoados/backend/internal/db"
	"github.com/achadosdoados/backend/internal/logger"
	"github.com/achadosdoados/backend/internal/repository/dao"
	"github.com/achadosdoados/backend/internal/storage"
	"github.com/achadosdoados/backend/internal/token"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	images, err := storage.NewImageStore(conf.API.ImagesDir)
	if err != nil {
		return fmt.Errorf("failed to initialize image store -> %w", err)
	}

	tokens := token.NewStore()

	s := api.NewServer(conf, postgresDB, tokens, images)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
