package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 30 * time.Second

	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes

	ContextTokenData = "token_data"

	ScopeTokenAccess = "access"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	RedisKeyDirectorySnapshot = "directory:snapshot:"
)
