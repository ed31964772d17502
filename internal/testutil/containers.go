// containers.go
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

package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/coursemart/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MariaDBOptions configures the database container
type MariaDBOptions struct {
	Image           string
	Database        string
	RootPassword    string
	AppUser         string
	AppPassword     string
	User            string
	UserPassword    string
	StartupDeadline time.Duration
}

// DefaultMariaDBOptions are the settings used by the integration test and the dev runner
func DefaultMariaDBOptions() MariaDBOptions {
	return MariaDBOptions{
		Image:           "mariadb:11.4",
		Database:        "coursemart",
		RootPassword:    "root-secret",
		AppUser:         "catalog",
		AppPassword:     "catalog-secret",
		User:            "learner",
		UserPassword:    "learner-secret",
		StartupDeadline: 90 * time.Second,
	}
}

// MariaDB is a running database container
type MariaDB struct {
	Container testcontainers.Container
	Host      string
	Port      nat.Port
	Options   MariaDBOptions
}

// StartMariaDB starts a MariaDB container and creates the catalog and user accounts
func StartMariaDB(ctx context.Context, opts MariaDBOptions) (*MariaDB, error) {
	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.Image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": opts.RootPassword,
				"MARIADB_DATABASE":      opts.Database,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(opts.StartupDeadline),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}

	m := &MariaDB{Container: container, Options: opts}
	if m.Host, err = container.Host(ctx); err != nil {
		m.Terminate()
		return nil, fmt.Errorf("failed to get MariaDB host: %w", err)
	}
	if m.Port, err = container.MappedPort(ctx, tcpPort); err != nil {
		m.Terminate()
		return nil, fmt.Errorf("failed to get MariaDB port: %w", err)
	}

	if err := m.initAccounts(ctx); err != nil {
		m.Terminate()
		return nil, err
	}

	return m, nil
}

// initAccounts creates the catalog account (schema owner) and the user record account
func (m *MariaDB) initAccounts(ctx context.Context) error {
	o := m.Options
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", o.RootPassword, m.Host, m.Port.Port()))
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", o.Database),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", o.AppUser, o.AppPassword),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", o.User, o.UserPassword),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'%%'", o.Database, o.AppUser),
		fmt.Sprintf("GRANT SELECT, INSERT, UPDATE ON `%s`.* TO '%s'@'%%'", o.Database, o.User),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MariaDB setup %q failed: %w", stmt, err)
		}
	}

	return nil
}

// Config returns a configuration pointing both pools at the container
func (m *MariaDB) Config() *config.Config {
	o := m.Options
	return &config.Config{
		Port:                 "5000",
		CORSOrigins:          "*",
		DBType:               "mariadb",
		DBHost:               m.Host,
		DBPort:               m.Port.Port(),
		DBDatabase:           o.Database,
		DBAppUser:            o.AppUser,
		DBAppPassword:        o.AppPassword,
		DBAppConnectionLimit: 5,
		DBUser:               o.User,
		DBPassword:           o.UserPassword,
		DBConnectionLimit:    5,
		DBLogLevel:           "warn",
		StoreTimeout:         10 * time.Second,
		IdentityTimeout:      3 * time.Second,
		IdentityProvider:     config.IdentityJWT,
		JWTSecret:            "dev-secret",
	}
}

// Env returns the environment variables that point the server at the container
func (m *MariaDB) Env() map[string]string {
	cfg := m.Config()
	return map[string]string{
		"DB_TYPE":           cfg.DBType,
		"DB_HOST":           cfg.DBHost,
		"DB_PORT":           cfg.DBPort,
		"DB_DATABASE":       cfg.DBDatabase,
		"DB_APP_USER":       cfg.DBAppUser,
		"DB_APP_PASSWORD":   cfg.DBAppPassword,
		"DB_USER":           cfg.DBUser,
		"DB_PASSWORD":       cfg.DBPassword,
		"IDENTITY_PROVIDER": cfg.IdentityProvider,
		"JWT_SECRET":        cfg.JWTSecret,
	}
}

// Terminate stops the container
func (m *MariaDB) Terminate() {
	if m == nil || m.Container == nil {
		return
	}
	if err := m.Container.Terminate(context.Background()); err != nil {
		log.Printf("Failed to terminate MariaDB: %v", err)
	}
}
