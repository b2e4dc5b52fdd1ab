package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestPrefix(t *testing.T) {
	full := SHA256Hex("192.168.1.1")

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"12 chars", 12, full[:12]},
		{"full hash if too long", 100, full},
		{"full hash if zero", 0, full},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prefix("192.168.1.1", tt.n); got != tt.want {
				t.Errorf("Prefix(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	if Key("title", "Jan 1,2") != Key("title", "Jan 1,2") {
		t.Error("Key should be deterministic")
	}
	if Key("a b", "c") == Key("a", "b c") {
		t.Error("parts must be separated before hashing")
	}
	if Key("title", "") == Key("tags", "") {
		t.Error("different fields should produce different keys")
	}
}
