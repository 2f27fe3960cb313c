package dns

import (
	"errors"
	"strings"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "example.com", want: "example.com"},
		{name: "trailing dot", input: "example.com.", want: "example.com"},
		{name: "root empty", input: "", want: "."},
		{name: "root dot", input: ".", want: "."},
		{name: "single label", input: "localhost", want: "localhost"},
		{name: "empty label", input: "www..com", wantErr: true},
		{name: "label too long", input: strings.Repeat("a", 64) + ".com", wantErr: true},
		{name: "label at limit", input: strings.Repeat("a", 63) + ".com", want: strings.Repeat("a", 63) + ".com"},
		{name: "name too long", input: strings.Repeat(strings.Repeat("a", 63)+".", 4) + "com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedName) {
					t.Errorf("ParseName(%q) error = %v, want ErrMalformedName", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseName(%q) failed: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDomainNameEqualIgnoresCase(t *testing.T) {
	a, _ := ParseName("WWW.Example.COM")
	b, _ := ParseName("www.example.com")
	c, _ := ParseName("example.com")

	if !a.Equal(b) {
		t.Error("case-insensitive comparison failed")
	}
	if a.Equal(c) {
		t.Error("names of different lengths compared equal")
	}
	// Case itself is preserved for echo-back.
	if a.String() != "WWW.Example.COM" {
		t.Errorf("case not preserved: %q", a)
	}
}

func TestDomainNameHasSuffix(t *testing.T) {
	name, _ := ParseName("www.example.com")

	for _, zone := range []string{"", "com", "Example.COM", "www.example.com"} {
		z, _ := ParseName(zone)
		if !name.HasSuffix(z) {
			t.Errorf("expected %q to lie within zone %q", name, z)
		}
	}
	for _, zone := range []string{"org", "ample.com", "a.www.example.com"} {
		z, _ := ParseName(zone)
		if name.HasSuffix(z) {
			t.Errorf("did not expect %q to lie within zone %q", name, z)
		}
	}
}

func TestDomainNameIsRoot(t *testing.T) {
	root, _ := ParseName(".")
	if !root.IsRoot() {
		t.Error("root name not recognized")
	}
	name, _ := ParseName("com")
	if name.IsRoot() {
		t.Error("com misreported as root")
	}
}
