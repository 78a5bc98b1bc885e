package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SCHOOLKU_BOOL", "true")
	t.Setenv("SCHOOLKU_BAD_BOOL", "nope")
	t.Setenv("SCHOOLKU_INT", "42")
	t.Setenv("SCHOOLKU_BAD_INT", "4x")

	assert.True(t, GetBool("SCHOOLKU_BOOL", false))
	assert.True(t, GetBool("SCHOOLKU_BAD_BOOL", true))
	assert.False(t, GetBool("SCHOOLKU_MISSING", false))

	assert.Equal(t, 42, GetInt("SCHOOLKU_INT", 1))
	assert.Equal(t, 7, GetInt("SCHOOLKU_BAD_INT", 7))
	assert.Equal(t, "fallback", GetEnv("SCHOOLKU_MISSING", "fallback"))
}

func TestDSN(t *testing.T) {
	c := Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "school", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/school?sslmode=disable&application_name=schoolku", c.DSN())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.DSN())
}
