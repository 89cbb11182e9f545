package server

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMapEnvToGinMode(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "production", want: gin.ReleaseMode},
		{env: "prod", want: gin.ReleaseMode},
		{env: "development", want: gin.DebugMode},
		{env: "test", want: gin.TestMode},
		{env: "release", want: gin.ReleaseMode},
		{env: "staging", want: gin.DebugMode},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, mapEnvToGinMode(tt.env))
		})
	}
}

func TestNewCommandFlags(t *testing.T) {
	cmd := NewCommand()

	envFlag := cmd.Flags().Lookup("env")
	if assert.NotNil(t, envFlag) {
		assert.Equal(t, "development", envFlag.DefValue)
		assert.Equal(t, "e", envFlag.Shorthand)
	}

	seedFlag := cmd.Flags().Lookup("seed")
	if assert.NotNil(t, seedFlag) {
		assert.Equal(t, "true", seedFlag.DefValue)
	}
}
