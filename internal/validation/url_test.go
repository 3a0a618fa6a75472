package validation

import (
	"strings"
	"testing"
)

func TestNewSourceURLValidator(t *testing.T) {
	v := NewSourceURLValidator()
	if v == nil {
		t.Fatal("NewSourceURLValidator returned nil")
	}

	if v.AllowLocalhost {
		t.Error("Expected AllowLocalhost to be false for security")
	}
	if v.AllowPrivateIPs {
		t.Error("Expected AllowPrivateIPs to be false for security")
	}
	if v.MaxLength != 2048 {
		t.Errorf("Expected MaxLength to be 2048, got %d", v.MaxLength)
	}
}

func TestNewPermissiveSourceURLValidator(t *testing.T) {
	v := NewPermissiveSourceURLValidator()
	if !v.AllowLocalhost {
		t.Error("Expected AllowLocalhost to be true for permissive mode")
	}
	if !v.AllowPrivateIPs {
		t.Error("Expected AllowPrivateIPs to be true for permissive mode")
	}
}

func TestValidateAndNormalize(t *testing.T) {
	v := NewSourceURLValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
		errorMsg    string
	}{
		{
			name:        "empty URL",
			input:       "",
			shouldError: true,
			errorMsg:    "cannot be empty",
		},
		{
			name:        "whitespace-only URL",
			input:       "   ",
			shouldError: true,
			errorMsg:    "cannot be empty",
		},
		{
			name:     "scheme added when missing",
			input:    "www.deeplearning.ai/the-batch/",
			expected: "https://www.deeplearning.ai/the-batch/",
		},
		{
			name:     "http preserved",
			input:    "http://www.deeplearning.ai/the-batch/",
			expected: "http://www.deeplearning.ai/the-batch/",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  https://www.deeplearning.ai/the-batch/data-points/  ",
			expected: "https://www.deeplearning.ai/the-batch/data-points/",
		},
		{
			name:        "ftp scheme rejected",
			input:       "ftp://files.deeplearning.ai/batch.xml",
			shouldError: true,
			errorMsg:    "http or https",
		},
		{
			name:        "file scheme rejected",
			input:       "file:///etc/passwd",
			shouldError: true,
			errorMsg:    "http or https",
		},
		{
			name:        "localhost rejected",
			input:       "http://localhost:8080/feed",
			shouldError: true,
			errorMsg:    "localhost",
		},
		{
			name:        "loopback IP rejected",
			input:       "http://127.0.0.1/feed",
			shouldError: true,
			errorMsg:    "localhost",
		},
		{
			name:        "private IP rejected",
			input:       "http://192.168.1.10/feed",
			shouldError: true,
			errorMsg:    "private IP",
		},
		{
			name:        "angle brackets rejected",
			input:       "https://example.org/<script>",
			shouldError: true,
			errorMsg:    "invalid characters",
		},
		{
			name:        "directory traversal rejected",
			input:       "https://example.org/../../etc/passwd",
			shouldError: true,
			errorMsg:    "traversal",
		},
		{
			name:        "javascript scheme in query rejected",
			input:       "https://example.org/feed?next=javascript:alert(1)",
			shouldError: true,
			errorMsg:    "suspicious query",
		},
		{
			name:        "too long",
			input:       "https://example.org/" + strings.Repeat("a", 2048),
			shouldError: true,
			errorMsg:    "too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error %q does not contain %q", err, tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidateAndNormalize_Permissive(t *testing.T) {
	v := NewPermissiveSourceURLValidator()

	for _, input := range []string{
		"http://localhost:8080/feed",
		"http://127.0.0.1:9999/the-batch/",
		"http://192.168.1.10/feed",
	} {
		if _, err := v.ValidateAndNormalize(input); err != nil {
			t.Errorf("permissive validator rejected %q: %v", input, err)
		}
	}
}

func TestIsPrivateIP_IPv6(t *testing.T) {
	cases := map[string]bool{
		"fd12:3456::1":       true,
		"fe80::1":            true,
		"2001:4860:4860::88": false,
	}
	for raw, want := range cases {
		v := NewSourceURLValidator()
		_, err := v.ValidateAndNormalize("http://[" + raw + "]/feed")
		got := err != nil
		if got != want {
			t.Errorf("ValidateAndNormalize(%q) rejected=%v, want %v (err=%v)", raw, got, want, err)
		}
	}
}
