package helper

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds the connection parameters for the postgres instance
// backing the vector index.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// NewDatabaseConfiguration loads the database configuration from the environment.
// A .env file in the working directory is loaded first if present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_DATABASE"),
	}

	if config.Host == "" || config.Port == "" {
		return nil, NewError("database configuration", fmt.Errorf("DB_HOST and DB_PORT must be set"))
	}
	if config.User == "" || config.Database == "" {
		return nil, NewError("database configuration", fmt.Errorf("DB_USER and DB_DATABASE must be set"))
	}

	return config, nil
}

// Database wraps a sql.DB connection together with its logger
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// Close closes the underlying connection pool.
func (d *Database) Close() {
	if d.Instance != nil {
		if err := d.Instance.Close(); err != nil {
			d.Logger.Warn("error closing database connection", slog.String("error", err.Error()))
		}
	}
}

// NewDatabase opens a connection to postgres and verifies it with a ping.
// It panics if the connection cannot be established, as nothing works without it.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.Host, config.Port, config.User, config.Password, config.Database,
	)

	instance, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Panicf("error opening database connection: %v", err)
	}

	// The container may still be starting up, retry the ping a few times
	for i := 0; i < 5; i++ {
		err = instance.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(i+1) * 200 * time.Millisecond)
	}
	if err != nil {
		log.Panicf("error pinging database: %v", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("database", config.Database))

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}
}
