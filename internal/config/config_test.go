package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestParse_Precedence walks the override order in one pass: flag defaults
// survive a missing config file, a config file overrides the flags, and
// environment variables override the file.
func TestParse_Precedence(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "WISHLIST_STORAGE", "TOKEN_FILE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	// Missing config file: flag defaults survive.
	t.Setenv("CONFIG", filepath.Join(t.TempDir(), "absent.toml"))
	opts := Parse()
	if opts.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q; want flag default", opts.BaseURL)
	}
	if opts.StoragePath != "wishlist.json" || opts.TokenPath != "token" || opts.LogLevel != "info" {
		t.Errorf("options = %+v; want flag defaults with no file and no env", opts)
	}

	// A config file overrides the flag values it names.
	path := filepath.Join(t.TempDir(), "config.toml")
	file := "base_url = \"http://file.example\"\nlog_level = \"debug\"\nstorage_path = \"file-wishlist.json\"\n"
	if err := os.WriteFile(path, []byte(file), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG", path)
	opts = Parse()
	if opts.BaseURL != "http://file.example" {
		t.Errorf("BaseURL = %q; want file value", opts.BaseURL)
	}
	if opts.LogLevel != "debug" || opts.StoragePath != "file-wishlist.json" {
		t.Errorf("options = %+v; want file values applied", opts)
	}
	if opts.TokenPath != "token" {
		t.Errorf("TokenPath = %q; a field absent from the file must keep its flag value", opts.TokenPath)
	}

	// Environment variables override the file.
	t.Setenv("API_BASE_URL", "http://env.example")
	t.Setenv("LOG_LEVEL", "warn")
	opts = Parse()
	if opts.BaseURL != "http://env.example" {
		t.Errorf("BaseURL = %q; want env value over file", opts.BaseURL)
	}
	if opts.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want env value over file", opts.LogLevel)
	}
	if opts.StoragePath != "file-wishlist.json" {
		t.Errorf("StoragePath = %q; want file value kept when env is unset", opts.StoragePath)
	}
}
