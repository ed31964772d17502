// main.go
//
// Course marketplace data service: catalog, purchases and learner progress
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of coursemart.
// coursemart is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// coursemart is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with coursemart.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/coursemart/internal/config"
	"github.com/localnerve/coursemart/internal/database"
	"github.com/localnerve/coursemart/internal/services"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	catalogDB, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to catalog database: %v", err)
	}

	var userDB *gorm.DB
	if cfg.IsSQLite() {
		userDB = catalogDB
	} else if userDB, err = database.ConnectUser(cfg); err != nil {
		log.Fatalf("Failed to connect to user database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	result := services.HealthCheck(ctx, cfg, catalogDB, userDB)
	cancel()

	database.Close(catalogDB)
	if userDB != catalogDB {
		database.Close(userDB)
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if !result.Healthy() {
		os.Exit(1)
	}
	os.Exit(0)
}
