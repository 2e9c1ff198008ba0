package commands

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preflightdev/preflight/pkg/config"
)

func TestBuilder_buildDockerImageCommand(t *testing.T) {
	builder := &Builder{repoRoot: "/test/repo"}

	cmd, err := builder.buildDockerImageCommand("alpine:latest", []string{"echo", "hello"}, config.Hook{})
	require.NoError(t, err)

	assert.Equal(t, "docker", cmd.Args[0])
	assert.Contains(t, cmd.Args, "run")
	assert.Contains(t, cmd.Args, "--rm")
	assert.Contains(t, cmd.Args, "-v")
	assert.Contains(t, cmd.Args, "/test/repo:/src:rw,Z")
	assert.Contains(t, cmd.Args, "--workdir")
	assert.Contains(t, cmd.Args, "/src")
	assert.Contains(t, cmd.Args, "alpine:latest")
	assert.Subset(t, cmd.Args, []string{"echo", "hello"})

	if uid, gid, ok := currentUserIDs(); ok {
		assert.Contains(t, cmd.Args, "--user")
		idx := indexOf(cmd.Args, "--user")
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, cmd.Args[idx+1], userIDString(uid, gid))
	}
}

func TestBuilder_buildDockerImageCommand_NoOverrideFromEntryOrVersion(t *testing.T) {
	builder := &Builder{repoRoot: "/test/repo"}

	// docker-image never treats LanguageVersion as the image or splits entry:
	// entry alone is the image reference, verbatim.
	cmd, err := builder.buildDockerImageCommand(
		"python -m flake8",
		[]string{"--config", ".flake8"},
		config.Hook{LanguageVersion: "python:3.9"},
	)
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "python -m flake8")
	assert.NotContains(t, cmd.Args, "python:3.9")
}

func TestBuilder_buildDockerCommand(t *testing.T) {
	builder := &Builder{repoRoot: "/test/repo"}

	cmd, err := builder.buildDockerCommand("python -m flake8", []string{"--config", ".flake8"}, config.Hook{ID: "flake8"})
	require.NoError(t, err)

	assert.Equal(t, "docker", cmd.Args[0])
	assert.Contains(t, cmd.Args, "run")
	assert.Contains(t, cmd.Args, "--rm")
	assert.Contains(t, cmd.Args, "-v")
	assert.Contains(t, cmd.Args, "/test/repo:/src:rw,Z")
	assert.Contains(t, cmd.Args, "--entrypoint")
	idx := indexOf(cmd.Args, "--entrypoint")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "python", cmd.Args[idx+1])
	// the built image tag follows the entrypoint's target
	tag := cmd.Args[idx+2]
	assert.Equal(t, DockerImageTag("/test/repo"), tag)
	assert.Subset(t, cmd.Args, []string{"-m", "flake8", "--config", ".flake8"})
}

func TestBuilder_buildDockerCommand_EmptyEntry(t *testing.T) {
	builder := &Builder{repoRoot: "/test/repo"}

	_, err := builder.buildDockerCommand("", nil, config.Hook{ID: "empty"})
	require.Error(t, err)
}

func TestDockerImageTag_Deterministic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/Dockerfile", []byte("FROM alpine\n"), 0o644))

	tag1 := DockerImageTag(dir)
	tag2 := DockerImageTag(dir)
	assert.Equal(t, tag1, tag2)

	otherDir := t.TempDir()
	require.NoError(t, os.WriteFile(otherDir+"/Dockerfile", []byte("FROM debian\n"), 0o644))
	assert.NotEqual(t, tag1, DockerImageTag(otherDir))
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func userIDString(uid, gid int) string {
	return strconv.Itoa(uid) + ":" + strconv.Itoa(gid)
}
