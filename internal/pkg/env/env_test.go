package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withEnv(t *testing.T, values map[string]string) {
	t.Helper()
	prev := Env
	Env = values
	t.Cleanup(func() { Env = prev })
}

func TestGetEnvPrefersLoadedFile(t *testing.T) {
	withEnv(t, map[string]string{"APP_PORT": "4000"})
	t.Setenv("APP_PORT", "5000")

	assert.Equal(t, "4000", GetEnv("APP_PORT", "3000"))
}

func TestGetEnvFallsBackToProcessEnvironment(t *testing.T) {
	withEnv(t, map[string]string{})
	t.Setenv("APP_HOST", "0.0.0.0")

	assert.Equal(t, "0.0.0.0", GetEnv("APP_HOST", "localhost"))
	assert.Equal(t, "fallback", GetEnv("IGNEWS_UNSET_KEY", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	withEnv(t, map[string]string{
		"VALID":   " 42 ",
		"INVALID": "forty-two",
		"EMPTY":   "",
	})

	assert.Equal(t, 42, GetEnvInt("VALID", 1))
	assert.Equal(t, 1, GetEnvInt("INVALID", 1))
	assert.Equal(t, 1, GetEnvInt("EMPTY", 1))
	assert.Equal(t, 7, GetEnvInt("IGNEWS_UNSET_INT", 7))
}

func TestIsDev(t *testing.T) {
	withEnv(t, map[string]string{"APP_ENV": "dev"})
	assert.True(t, IsDev())

	Env = map[string]string{"APP_ENV": "prod"}
	assert.False(t, IsDev())
}
