package cliparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		env         map[string]string
		expected    Config
		expectError bool
	}{
		{
			name: "flags set everything",
			args: []string{"-p", "8080", "-d", "postgres://flag"},
			expected: Config{
				Port:        8080,
				DatabaseURL: "postgres://flag",
			},
		},
		{
			name: "env fallback",
			args: []string{},
			env: map[string]string{
				"PORT":         "9090",
				"DATABASE_URL": "postgres://env",
			},
			expected: Config{
				Port:        9090,
				DatabaseURL: "postgres://env",
			},
		},
		{
			name: "flags win over env",
			args: []string{"-p", "8080", "-d", "postgres://flag"},
			env: map[string]string{
				"PORT":         "9090",
				"DATABASE_URL": "postgres://env",
			},
			expected: Config{
				Port:        8080,
				DatabaseURL: "postgres://flag",
			},
		},
		{
			name: "default port",
			args: []string{"-d", "postgres://flag"},
			expected: Config{
				Port:        3320,
				DatabaseURL: "postgres://flag",
			},
		},
		{
			name:        "missing database URL",
			args:        []string{"-p", "8080"},
			expectError: true,
		},
		{
			name: "invalid PORT env",
			args: []string{},
			env: map[string]string{
				"PORT":         "not-a-number",
				"DATABASE_URL": "postgres://env",
			},
			expectError: true,
		},
		{
			name:        "invalid flag",
			args:        []string{"-bogus"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear the fallbacks so earlier cases don't leak in
			t.Setenv("PORT", "")
			t.Setenv("DATABASE_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := ParseFlags(tt.args)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}
