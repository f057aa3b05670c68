package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresConfigConnString(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     "5432",
		User:     "trivia",
		Password: "p@ss word",
		DBName:   "trivia",
	}
	assert.Equal(t, "postgres://trivia:p%40ss%20word@db:5432/trivia", cfg.ConnString())
}

func TestRedisConfigEnabled(t *testing.T) {
	assert.False(t, RedisConfig{}.Enabled())
	assert.True(t, RedisConfig{Addr: "localhost:6379"}.Enabled())
}
