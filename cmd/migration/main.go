package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/akravets/contact-book/internal/store"
	"gitlab.com/akravets/contact-book/pkg/config"
	"gitlab.com/akravets/contact-book/pkg/logger"
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=alex DBPWD=secret go run main.go -file=../../scripts/database.sql
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("could not load configuration: %v", err)
	}
	sqlDB, err := store.OpenDatabase(cfg.DB.User, cfg.DB.Pass, cfg.DB.Host, cfg.DB.Name)
	if err != nil {
		logger.Fatalf("could not open database: %v", err)
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	readFile, err := os.Open(*filePtr)
	if err != nil {
		logger.Fatalf("could not open sql file: %v", err)
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			statement := builder.String()
			db.MustExec(statement)
			builder = strings.Builder{}
		}
	}
	logger.Info("migration finished")
}
