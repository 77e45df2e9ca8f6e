package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// readyCheckout lays out a checkout with every artifact the platform needs.
func readyCheckout(t *testing.T, startScript string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"server/dist/index.js":   "module.exports = {}",
		"client/dist/index.html": "<!doctype html>",
		"railway.toml":           "[build]\n",
		"nixpacks.toml":          "[phases.build]\n",
		"server.js":              "require('./server/dist/index.js')",
		"server/package.json":    `{"name":"server"}`,
		"client/package.json":    `{"name":"client"}`,
	}
	if startScript != "" {
		files["package.json"] = `{"scripts":{"start":"` + startScript + `"}}`
	} else {
		files["package.json"] = `{"scripts":{"build":"tsc"}}`
	}
	for rel, content := range files {
		p := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	for _, d := range []string{"node_modules", "server/node_modules", "client/node_modules"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o755))
	}
	return dir
}

func TestReadiness_AllArtifactsPresent(t *testing.T) {
	dir := readyCheckout(t, "node server.js")
	s := (&Runner{}).Run(context.Background(), Readiness(dir))
	require.True(t, s.AllPassed, "failures: %+v", s.Failures())
	require.Empty(t, s.Warnings())
}

func TestReadiness_MissingStartScript(t *testing.T) {
	dir := readyCheckout(t, "")
	s := (&Runner{}).Run(context.Background(), Readiness(dir))

	require.False(t, s.AllPassed)
	failures := s.Failures()
	require.Len(t, failures, 1)
	require.Equal(t, "start script", failures[0].Name)
	require.Equal(t, "Add start script to package.json", failures[0].Err)
	require.Equal(t, KindMissingArtifact, failures[0].Kind)
}

func TestReadiness_MissingBundleHasRemediation(t *testing.T) {
	dir := readyCheckout(t, "node server.js")
	require.NoError(t, os.Remove(filepath.Join(dir, "server", "dist", "index.js")))

	s := (&Runner{}).Run(context.Background(), Readiness(dir))
	require.False(t, s.AllPassed)
	require.Equal(t, "server bundle", s.Failures()[0].Name)
	require.Contains(t, s.Failures()[0].Remediation, "npm run build")
}

func TestReadiness_MissingNodeModulesIsWarning(t *testing.T) {
	dir := readyCheckout(t, "node server.js")
	require.NoError(t, os.Remove(filepath.Join(dir, "node_modules")))

	s := (&Runner{}).Run(context.Background(), Readiness(dir))
	require.True(t, s.AllPassed)
	require.Len(t, s.Warnings(), 1)
	require.Equal(t, "dependencies", s.Warnings()[0].Name)
}

func TestStartScript_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o644))

	err := StartScript(p).Run(context.Background())
	require.Error(t, err)
	require.Equal(t, KindInvalidResponse, KindOf(err))
}
