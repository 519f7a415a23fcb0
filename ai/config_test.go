package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid", NewConfig(WithHost("http://localhost:11434/v1"), WithModel("embeddinggemma")), false},
		{"missing host", NewConfig(WithModel("embeddinggemma")), true},
		{"missing model", NewConfig(WithHost("http://localhost:11434/v1")), true},
		{"blank host", NewConfig(WithHost("   "), WithModel("m")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
