package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform = %q, want GOOS/GOARCH form", info.Platform)
	}
}

func TestStringShortensCommit(t *testing.T) {
	info := Info{
		Version: "1.2.3",
		Commit:  "0123456789abcdef",
		Date:    "2026-01-01",
	}

	s := info.String()
	if !strings.Contains(s, "01234567") {
		t.Errorf("String() = %q, want short commit", s)
	}
	if strings.Contains(s, "0123456789abcdef") {
		t.Errorf("String() = %q, commit not shortened", s)
	}
}

func TestShort(t *testing.T) {
	info := Info{Version: "1.2.3"}
	if got := info.Short(); got != "1.2.3" {
		t.Errorf("Short() = %q, want %q", got, "1.2.3")
	}
}
