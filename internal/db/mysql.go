// Package db opens the MySQL connection shared by the repositories.
package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL opens the foundation database over GORM. Schema migration is
// left to the callers (server startup and the seeder both auto-migrate
// the models they touch).
func NewMySQL(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return gormDB, nil
}
