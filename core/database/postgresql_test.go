package database

import (
	"testing"

	"room-booking-api/core/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: 5433, User: "rooms", Password: "s3cret", DBName: "booking"}

	assert.Equal(t, "host=db port=5433 user=rooms password=s3cret dbname=booking sslmode=disable", DSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}

func TestDatabaseSatisfiesIDatabase(t *testing.T) {
	var db IDatabase = &Database{}
	assert.NotNil(t, db)
}
