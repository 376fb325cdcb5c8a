package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "valid", value: "42", want: 42},
		{name: "padded", value: " 12 ", want: 12},
		{name: "negative", value: "-3", want: -3},
		{name: "invalid", value: "many", want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAGDB_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("MAGDB_TEST_INT", 7))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "unset", value: "", want: time.Minute},
		{name: "valid", value: "1h30m", want: 90 * time.Minute},
		{name: "invalid", value: "soon", want: time.Minute},
		{name: "bare number", value: "10", want: time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAGDB_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("MAGDB_TEST_DURATION", time.Minute))
		})
	}
}
