package validation

import (
	"strings"
	"testing"

	"github.com/tailmesh/tsclient/lib/errors"
)

func TestCleanAddress_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare", "100.64.1.2", "100.64.1.2"},
		{"trailing newline", "100.64.1.2\n", "100.64.1.2"},
		{"surrounding whitespace", "  \t100.101.102.103 \n\n", "100.101.102.103"},
		{"windows line ending", "100.64.0.1\r\n", "100.64.0.1"},
		{"long prefixed value", "100." + strings.Repeat("6", 70) + "\n", "100." + strings.Repeat("6", 70)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CleanAddress(tc.raw)
			if err != nil {
				t.Fatalf("CleanAddress(%q) error = %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("CleanAddress(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestCleanAddress_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "  \n"},
		{"private range", "192.168.1.5"},
		{"public ip", "8.8.8.8"},
		{"prefix in middle", "10.100.0.1"},
		{"error text", "no Tailscale IP found\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CleanAddress(tc.raw)
			if err == nil {
				t.Fatalf("CleanAddress(%q) should fail", tc.raw)
			}
			if !errors.IsInvalidAddress(err) {
				t.Errorf("CleanAddress(%q) error = %v, want InvalidAddress", tc.raw, err)
			}
		})
	}
}

// TestCleanAddress_CarriesTrimmedValue verifies the error detail is the
// trimmed input, not the raw input.
func TestCleanAddress_CarriesTrimmedValue(t *testing.T) {
	_, err := CleanAddress("  192.168.0.7\n")

	var e *errors.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v should be a structured *errors.Error", err)
	}
	if e.Detail != "192.168.0.7" {
		t.Errorf("Detail = %q, want trimmed %q", e.Detail, "192.168.0.7")
	}
}

// TestCleanAddress_CarriesFullValue verifies the error detail is never
// shortened, however long the rejected input is.
func TestCleanAddress_CarriesFullValue(t *testing.T) {
	long := strings.Repeat("x", 500)
	_, err := CleanAddress(long + "\n")

	var e *errors.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v should be a structured *errors.Error", err)
	}
	if e.Detail != long {
		t.Errorf("Detail length = %d, want the full %d-byte trimmed value", len(e.Detail), len(long))
	}
}

func TestFirstAddress(t *testing.T) {
	tests := []struct {
		name  string
		addrs []string
		want  string
	}{
		{"nil", nil, ""},
		{"empty", []string{}, ""},
		{"single", []string{"100.64.1.2"}, "100.64.1.2"},
		{"multiple keeps order", []string{"100.64.1.2", "fd7a::1"}, "100.64.1.2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FirstAddress(tc.addrs); got != tc.want {
				t.Errorf("FirstAddress(%v) = %q, want %q", tc.addrs, got, tc.want)
			}
		})
	}
}

func TestValidText(t *testing.T) {
	if !ValidText("100.64.1.2\n") {
		t.Error("plain ASCII should be valid text")
	}
	if ValidText("\xff\xfe") {
		t.Error("invalid UTF-8 should be rejected")
	}
}
