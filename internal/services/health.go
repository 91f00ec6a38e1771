package services

import (
	"fmt"
	"log"

	"github.com/tienoi-one/catalog-service/internal/config"
	"github.com/tienoi-one/catalog-service/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	DataSource   string            `json:"dataSource"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the remote catalog source; bundled seed data is always available
	if cfg.DataBaseURL == "" {
		result.DataSource = "bundled"
	} else if err := utils.PingDataSource(cfg.DataBaseURL); err != nil {
		result.Status = "unhealthy"
		result.DataSource = "unreachable"
		result.Details["data_source_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Data source ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Data source ping failed: %v", err)
		}
		log.Printf("Health check failed - data source ping: %v", err)
	} else {
		result.DataSource = "ok"
		result.Details["data_source_url"] = cfg.DataBaseURL
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
