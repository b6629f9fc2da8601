package urlutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"lowercase_host", "https://Example.COM/Path", "https://example.com/Path", false},
		{"strip_fragment", "https://example.com/a#section", "https://example.com/a", false},
		{"default_port_https", "https://example.com:443/a", "https://example.com/a", false},
		{"default_port_http", "http://example.com:80/", "http://example.com/", false},
		{"empty_path", "https://example.com", "https://example.com/", false},
		{"keep_query", "https://example.com/s?q=go", "https://example.com/s?q=go", false},
		{"non_default_port", "https://example.com:8443/", "https://example.com:8443/", false},
		{"reject_mailto", "mailto:someone@example.com", "", true},
		{"reject_relative", "/just/a/path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSameSite(t *testing.T) {
	if !SameSite("www.example.com", "example.com") {
		t.Error("expected www variant to match bare domain")
	}
	if SameSite("example.com", "other.com") {
		t.Error("expected different domains to not match")
	}
}
