package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "Hostname",
			got:      Hostname("appstack"),
			expected: "appstack",
		},
		{
			name:     "FallbackHostname",
			got:      FallbackHostname("appstack"),
			expected: "appstack-priv",
		},
		{
			name:     "OperatorUser",
			got:      OperatorUser("appstack"),
			expected: "appstack",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}
