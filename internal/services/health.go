package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/localnerve/coursemart/internal/config"
	"github.com/localnerve/coursemart/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Catalog      string            `json:"catalog"`
	Users        string            `json:"users"`
	Identity     string            `json:"identity"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every dependency answered
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

func (r *HealthCheckResult) fail(component, message string, err error) {
	r.Status = "unhealthy"
	r.Details[component+"_error"] = err.Error()
	msg := fmt.Sprintf("%s: %v", message, err)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
	log.Printf("Health check failed - %s: %v", component, err)
}

// pingDB reports "ok", "error" (no pool) or "unreachable" for a database pool
func pingDB(ctx context.Context, result *HealthCheckResult, name string, db *gorm.DB) string {
	if db == nil {
		result.fail(name, name+" database not configured", fmt.Errorf("nil pool"))
		return "error"
	}
	sqlDB, err := db.DB()
	if err != nil {
		result.fail(name, name+" database connection error", err)
		return "error"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		result.fail(name, name+" database ping failed", err)
		return "unreachable"
	}
	return "ok"
}

// HealthCheck pings both record stores and, for the Authorizer provider, the identity service
func HealthCheck(ctx context.Context, cfg *config.Config, catalogDB, userDB *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	result.Catalog = pingDB(ctx, &result, "catalog", catalogDB)
	result.Users = pingDB(ctx, &result, "users", userDB)
	if result.Catalog == "ok" {
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	switch {
	case cfg.IdentityProvider != config.IdentityAuthorizer:
		result.Identity = "n/a"
		result.Details["identity_provider"] = cfg.IdentityProvider
	default:
		if err := utils.PingAuthorizer(ctx, cfg.AuthzURL); err != nil {
			result.Identity = "unreachable"
			result.fail("authorizer", "Authorizer ping failed", err)
		} else {
			result.Identity = "ok"
			result.Details["authorizer_url"] = strings.TrimSuffix(cfg.AuthzURL, "/")
		}
	}

	if result.Healthy() {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
