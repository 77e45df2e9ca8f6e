package check

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileExists builds a check that the given path is an existing regular file.
func FileExists(name, path, remediation string) Check {
	return New(name, func(context.Context) error {
		fi, err := os.Stat(path)
		if err != nil {
			return Wrap(KindMissingArtifact, path+" not found", err)
		}
		if fi.IsDir() {
			return Fail(KindMissingArtifact, path+" is a directory, expected a file")
		}
		return nil
	}, remediation)
}

// DirExists builds a check that the given path is an existing directory.
func DirExists(name, path, remediation string) Check {
	return New(name, func(context.Context) error {
		fi, err := os.Stat(path)
		if err != nil {
			return Wrap(KindMissingArtifact, path+" not found", err)
		}
		if !fi.IsDir() {
			return Fail(KindMissingArtifact, path+" is not a directory")
		}
		return nil
	}, remediation)
}

// StartScript builds a check that the root package.json declares a non-empty
// scripts.start, which the hosting platform uses as the start command.
func StartScript(manifestPath string) Check {
	return New("start script", func(context.Context) error {
		raw, err := os.ReadFile(manifestPath)
		if err != nil {
			return Wrap(KindMissingArtifact, manifestPath+" not readable", err)
		}
		var manifest struct {
			Scripts map[string]string `json:"scripts"`
		}
		if err := json.Unmarshal(raw, &manifest); err != nil {
			return Wrap(KindInvalidResponse, manifestPath+" is not valid JSON", err)
		}
		if manifest.Scripts["start"] == "" {
			return Fail(KindMissingArtifact, "Add start script to package.json")
		}
		return nil
	}, "Add start script to package.json")
}

// Readiness assembles the deployment-readiness registry for a checkout rooted
// at dir: build artifacts, deploy configs, manifests, installed dependency
// dirs, and the start command.
func Readiness(dir string) Registry {
	p := func(parts ...string) string {
		return filepath.Join(append([]string{dir}, parts...)...)
	}
	reg := Registry{
		FileExists("server bundle", p("server", "dist", "index.js"), "Run the server build (npm run build in server/)"),
		FileExists("client entry", p("client", "dist", "index.html"), "Run the client build (npm run build in client/)"),
		FileExists("railway config", p("railway.toml"), "Add railway.toml to the repository root"),
		FileExists("nixpacks config", p("nixpacks.toml"), "Add nixpacks.toml to the repository root"),
		FileExists("server shim", p("server.js"), "Add the root server.js entry shim"),
		StartScript(p("package.json")),
	}
	for _, m := range []string{"server", "client"} {
		reg = append(reg, FileExists(m+" manifest", p(m, "package.json"),
			fmt.Sprintf("Add %s/package.json", m)))
	}
	for _, d := range []string{".", "server", "client"} {
		name := "dependencies"
		if d != "." {
			name = d + " dependencies"
		}
		c := DirExists(name, p(d, "node_modules"), "Run npm install in "+d)
		c.Required = false
		reg = append(reg, c)
	}
	return reg
}
