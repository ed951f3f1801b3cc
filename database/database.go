// Package database provides Postgres persistence for trend-finder analysis
// runs: the originating request, its extracted search criteria, every scraped
// product and the market-opportunity clusters derived from them.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the GORM connection
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM instance for direct access when needed
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes the database connection using GORM
func Connect(host, port, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
