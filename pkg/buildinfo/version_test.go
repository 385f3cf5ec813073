package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func restore(t *testing.T) {
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name                    string
		version, commit, date   string
		bi                      debug.BuildInfo
		wantVersion, wantCommit string
		wantDate                string
	}{
		{
			name:    "fills unset values",
			version: "dev", commit: "none", date: "unknown",
			bi: debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
				},
			},
			wantVersion: "v0.3.1", wantCommit: "abc123", wantDate: "2026-01-02T03:04:05Z",
		},
		{
			name:    "ldflags win",
			version: "v1.0.0", commit: "deadbeef", date: "2025-12-20",
			bi: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			wantVersion: "v1.0.0", wantCommit: "deadbeef", wantDate: "2025-12-20",
		},
		{
			name:    "devel module version is ignored",
			version: "dev", commit: "none", date: "unknown",
			bi:          debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev", wantCommit: "none", wantDate: "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)
			Version, Commit, Date = tt.version, tt.commit, tt.date
			fromBuildInfo(&tt.bi)
			if Version != tt.wantVersion || Commit != tt.wantCommit || Date != tt.wantDate {
				t.Errorf("got %s/%s/%s, want %s/%s/%s",
					Version, Commit, Date, tt.wantVersion, tt.wantCommit, tt.wantDate)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
