package commands

import (
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/preflightdev/preflight/pkg/config"
)

// DockerImageTag returns the deterministic image tag used for a "docker"
// language hook's built image: a content hash of the Dockerfile under
// repoPath, so the same repo checkout always resolves to the same tag and a
// second run can skip `--pull`. Falls back to hashing repoPath itself if the
// Dockerfile can't be read (e.g. it hasn't been cloned yet).
func DockerImageTag(repoPath string) string {
	content, err := os.ReadFile(repoPath + "/Dockerfile")
	if err != nil {
		content = []byte(repoPath)
	}
	sum := sha256.Sum256(content)
	return fmt.Sprintf("preflight-hook:%x", sum[:8])
}

// dockerRunArgs assembles the shared `docker run` flags for both the
// docker-image and docker backends: remove-on-exit, the calling user's
// uid:gid (so files the container writes aren't root-owned on the host),
// and the repo root bind-mounted read-write with SELinux relabeling.
func (b *Builder) dockerRunArgs() []string {
	args := []string{"run", "--rm"}
	if uid, gid, ok := currentUserIDs(); ok {
		args = append(args, "--user", fmt.Sprintf("%d:%d", uid, gid))
	}
	args = append(args, "-v", fmt.Sprintf("%s:/src:rw,Z", b.repoRoot), "--workdir", "/src")
	return args
}

// buildDockerImageCommand builds a command for the docker-image language:
// entry is a container reference run directly, with no build step.
func (b *Builder) buildDockerImageCommand(
	entry string,
	args []string,
	_ config.Hook,
) (*exec.Cmd, error) {
	dockerArgs := b.dockerRunArgs()
	dockerArgs = append(dockerArgs, entry)
	dockerArgs = append(dockerArgs, args...)
	return exec.Command("docker", dockerArgs...), nil
}

// buildDockerCommand builds a command for the docker language: the hook's
// repo is built into an image tagged by DockerImageTag (see
// pkg/repository/languages/docker.go), and entry names the command to run
// inside it via --entrypoint, matching pre-commit's docker backend.
func (b *Builder) buildDockerCommand(
	entry string,
	args []string,
	hook config.Hook,
) (*exec.Cmd, error) {
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return nil, fmt.Errorf("docker hook %s has an empty entry", hook.ID)
	}

	tag := DockerImageTag(b.repoRoot)

	dockerArgs := b.dockerRunArgs()
	dockerArgs = append(dockerArgs, "--entrypoint", fields[0], tag)
	dockerArgs = append(dockerArgs, fields[1:]...)
	dockerArgs = append(dockerArgs, args...)
	return exec.Command("docker", dockerArgs...), nil
}
