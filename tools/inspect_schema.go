package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/localnerve/coursemart/internal/config"
	"github.com/localnerve/coursemart/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	var dbType string
	flag.StringVar(&dbType, "type", "sqlite-go", "sqlite or sqlite-go")
	flag.Parse()

	cfg := &config.Config{DBType: dbType, DBDatabase: ":memory:"}
	dialector, err := database.Dialector(cfg, "", "")
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&schema)
		fmt.Println(schema)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
	}
}
