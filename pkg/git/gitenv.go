package git

import (
	"os"
	"os/exec"
	"strings"
)

// gitEnvWhitelist lists the GIT_* environment variable prefixes that are
// allowed to pass through to a child git process. Everything else starting
// with GIT_ is dropped so that running this tool as a git hook doesn't feed
// its own invocation environment back into the git processes it spawns.
var gitEnvWhitelist = []string{
	"GIT_EXEC_PATH",
	"GIT_SSH",
	"GIT_SSL",
	"GIT_CONFIG_COUNT",
	"GIT_CONFIG_KEY_",
	"GIT_CONFIG_VALUE_",
	"GIT_HTTP_PROXY_AUTHMETHOD",
	"GIT_ALLOW_PROTOCOL",
	"GIT_ASKPASS",
}

// filteredGitEnv returns the current process environment with non-whitelisted
// GIT_* variables removed, so a child git process can't recurse into
// unrelated hook machinery.
func filteredGitEnv() []string {
	base := os.Environ()
	filtered := make([]string, 0, len(base))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, "GIT_") || isWhitelistedGitVar(key) {
			filtered = append(filtered, kv)
		}
	}
	return filtered
}

func isWhitelistedGitVar(key string) bool {
	for _, prefix := range gitEnvWhitelist {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// gitCommand builds an *exec.Cmd for the git binary rooted at dir, always
// passing -c core.useBuiltinFSMonitor=false and a filtered environment.
func gitCommand(dir string, args ...string) *exec.Cmd {
	fullArgs := append([]string{"-c", "core.useBuiltinFSMonitor=false"}, args...)
	cmd := exec.Command("git", fullArgs...)
	cmd.Dir = dir
	cmd.Env = filteredGitEnv()
	return cmd
}
