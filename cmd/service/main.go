package main

import (
	"fmt"

	"gitlab.com/akravets/contact-book/internal/service"
	"gitlab.com/akravets/contact-book/internal/store"
	"gitlab.com/akravets/contact-book/pkg/config"
	"gitlab.com/akravets/contact-book/pkg/logger"
)

// Usage example on the command line:
// > PORT=8080 DBHOST=localhost:3306 DBNAME=test DBUSER=alex DBPWD=secret GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("could not load configuration: %v", err)
	}
	sqlDB, err := store.OpenDatabase(cfg.DB.User, cfg.DB.Pass, cfg.DB.Host, cfg.DB.Name)
	if err != nil {
		logger.Fatalf("could not open database: %v", err)
	}
	defer sqlDB.Close()

	handler := service.NewHandler(store.New(sqlDB), cfg.UploadDir)
	router := service.SetupHttpRouter(handler)
	logger.Infof("listening on port %d", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
