package main

import (
	"encoding/json"
	"flag"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/Milo-Goodfellow-Work/matchbook/config"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/infra"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/logging"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logging.Init(cfg.LogLevel)

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	sourceURL := "file://migration/sql"
	if cfg.TradesDB != nil && cfg.TradesDB.MigrationSourceURL != "" {
		sourceURL = cfg.TradesDB.MigrationSourceURL
	}

	mgTool := infra.GetMigrateTool()
	mgTool.Migrate(sourceURL, cfg.TradesDB.MigrationConnURL)
}
