package leakhound

import (
	"runtime/debug"
	"strings"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/leakhound/leakhound/internal/types"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: leakhound/leakhound
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "leakhound/leakhound")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

// shouldFail reports whether any issue meets the fail-on threshold.
func shouldFail(issues []types.Issue, failOn string) bool {
	min := types.Severity(strings.ToLower(strings.TrimSpace(failOn))).Rank()
	if min < 0 {
		min = types.SevMed.Rank()
	}
	for _, is := range issues {
		if is.Severity.Rank() >= min {
			return true
		}
	}
	return false
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
