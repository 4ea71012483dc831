package session

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected Action
	}{
		{"yes", ActionContinue},
		{"  YES ", ActionContinue},
		{"y", ActionContinue},
		{"continue", ActionContinue},
		{"search", ActionSearch},
		{"Search", ActionSearch},
		{"s", ActionSearch},
		{"no", ActionQuit},
		{"QUIT", ActionQuit},
		{"exit", ActionQuit},
		{"maybe", ActionInvalid},
		{"", ActionInvalid},
		{"yes please", ActionInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ParseAction(tt.input); result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}
