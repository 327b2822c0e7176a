// Command purge-images wipes every stored image under the upload prefix of
// the configured backend. The filesystem backend refuses to run in
// production; intended for development and test environments.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"picset/config"
	"picset/di"
	"picset/utils/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLogger(cfg.Logging.Level, cfg.Logging.Format)

	components, err := di.NewApplicationComponents(cfg, nil)
	if err != nil {
		log.Error("failed to assemble components", "error", err)
		os.Exit(1)
	}

	if err := components.Storage.DeleteAll(context.Background()); err != nil {
		log.Error("bulk image delete failed", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	log.Info("stored images purged", "backend", cfg.Storage.Backend)
}
