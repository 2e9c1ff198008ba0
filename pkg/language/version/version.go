// Package version parses and matches the language_version grammar shared by
// every backend that installs its own toolchain (python, node, go): empty
// or "default" for any version, an exact major[.minor[.patch]] number
// (optionally prefixed by the language name, e.g. "python3.11"), a semver
// range expression, a filesystem path to an existing interpreter, or (node
// only) an "lts/<codename>" request.
package version

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Kind discriminates the parsed shape of a version request.
type Kind int

const (
	// KindAny matches any installed toolchain; the request was empty or "default".
	KindAny Kind = iota
	// KindExact matches specific major[.minor[.patch]] components.
	KindExact
	// KindPath matches only the toolchain at this exact filesystem path.
	KindPath
	// KindRange matches a semver range constraint (e.g. ">=3.12,<4").
	KindRange
	// KindCodename matches a Node LTS codename (e.g. "lts/hydrogen").
	KindCodename
)

// Request is a parsed language_version value, ready to test against an
// installed InstallInfo's recorded version or toolchain path.
type Request struct {
	Kind     Kind
	Raw      string
	Major    int
	Minor    int
	Patch    int
	HasMinor bool
	HasPatch bool
	Codename string

	constraint *semver.Constraints
}

// knownLanguagePrefixes strips a leading language name from a version
// string like "python3.11" or "go1.21" so the numeric grammar below can
// parse the remainder uniformly.
var knownLanguagePrefixes = []string{"python", "node", "golang", "go"}

// Parse interprets raw per the grammar documented on the package, preferring
// an exact numeric parse, then a semver range, then a path check, in that
// order, matching the source tool's parser precedence.
func Parse(raw string) Request {
	s := strings.TrimSpace(raw)

	if s == "" || s == "default" || s == "any" {
		return Request{Kind: KindAny, Raw: raw}
	}

	if rest, ok := strings.CutPrefix(s, "lts/"); ok {
		return Request{Kind: KindCodename, Raw: raw, Codename: strings.ToLower(rest)}
	}

	numeric := stripLanguagePrefix(s)
	if req, ok := parseExactNumeric(numeric); ok {
		req.Raw = raw
		return req
	}

	if c, err := semver.NewConstraint(s); err == nil {
		return Request{Kind: KindRange, Raw: raw, constraint: c}
	}

	if info, err := os.Stat(s); err == nil && !info.IsDir() {
		return Request{Kind: KindPath, Raw: raw}
	}

	// Nothing recognized: fall back to an exact string match against
	// whatever gets recorded, rather than erroring — an unresolvable
	// request should fail at install time with a clear message, not here.
	return Request{Kind: KindExact, Raw: raw}
}

func stripLanguagePrefix(s string) string {
	for _, prefix := range knownLanguagePrefixes {
		if rest, ok := strings.CutPrefix(s, prefix); ok && rest != "" {
			if _, err := strconv.Atoi(rest[:1]); err == nil {
				return rest
			}
		}
	}
	return s
}

// parseExactNumeric accepts "<major>", "<major>.<minor>", or
// "<major>.<minor>.<patch>", each component a non-negative integer.
func parseExactNumeric(s string) (Request, bool) {
	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Request{}, false
	}

	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Request{}, false
		}
		nums = append(nums, n)
	}

	req := Request{Kind: KindExact, Major: nums[0]}
	if len(nums) >= 2 {
		req.HasMinor = true
		req.Minor = nums[1]
	}
	if len(nums) == 3 {
		req.HasPatch = true
		req.Patch = nums[2]
	}
	return req, true
}

// SatisfiedBy reports whether an installed environment satisfies this
// request. actualVersion is the installed toolchain's semver-ish version
// string (e.g. "3.11.4"); toolchainPath is the absolute path to its
// canonical interpreter, used for KindPath requests.
func (r Request) SatisfiedBy(actualVersion, toolchainPath string) bool {
	switch r.Kind {
	case KindAny:
		return true
	case KindCodename:
		return false
	case KindPath:
		return toolchainPath != "" && filepath.Clean(toolchainPath) == filepath.Clean(r.Raw)
	case KindRange:
		v, err := semver.NewVersion(actualVersion)
		if err != nil || r.constraint == nil {
			return false
		}
		return r.constraint.Check(v)
	case KindExact:
		return r.satisfiedByExact(actualVersion)
	default:
		return false
	}
}

func (r Request) satisfiedByExact(actualVersion string) bool {
	v, err := semver.NewVersion(actualVersion)
	if err != nil {
		// Not parseable as semver (e.g. a bare interpreter name); fall back
		// to a prefix match against the raw numeric request.
		return strings.HasPrefix(actualVersion, numericPrefix(r))
	}
	if int(v.Major()) != r.Major { //nolint:gosec // version components fit comfortably in int
		return false
	}
	if r.HasMinor && int(v.Minor()) != r.Minor { //nolint:gosec // see above
		return false
	}
	if r.HasPatch && int(v.Patch()) != r.Patch { //nolint:gosec // see above
		return false
	}
	return true
}

func numericPrefix(r Request) string {
	s := strconv.Itoa(r.Major)
	if r.HasMinor {
		s += "." + strconv.Itoa(r.Minor)
	}
	if r.HasPatch {
		s += "." + strconv.Itoa(r.Patch)
	}
	return s
}

// SatisfiedByCodename reports whether a Node LTS codename request matches an
// installed environment's recorded codename, case-insensitively. Only
// meaningful for KindCodename requests.
func (r Request) SatisfiedByCodename(installedCodename string) bool {
	return r.Kind == KindCodename && strings.EqualFold(r.Codename, installedCodename)
}
