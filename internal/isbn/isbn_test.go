package isbn

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "hyphenated ISBN-13",
			input:    "978-0-13-468599-1",
			expected: "9780134685991",
		},
		{
			name:     "hyphenated ISBN-10 with check character",
			input:    "0-8044-2957-x",
			expected: "080442957X",
		},
		{
			name:     "clean ISBN-13 passes through",
			input:    "9780441013593",
			expected: "9780441013593",
		},
		{
			name:     "spaces and prefix text stripped",
			input:    "ISBN 0 306 40615 2",
			expected: "0306406152",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "no digits at all",
			input:    "abc",
			expected: "",
		},
		{
			name:     "wrong length after cleaning",
			input:    "12345",
			expected: "",
		},
		{
			name:     "eleven digits rejected",
			input:    "12345678901",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"978-0-13-468599-1",
		"0-8044-2957-x",
		"garbage",
		"",
		"9780441013593",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
