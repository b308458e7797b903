// Package doctor probes the host environment for the tools a scaffolded
// project needs. Probes are cheap and read-only: PATH lookups, env reads and
// directory stats.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"etch/internal/scaffold"
)

// Check is one probe result.
type Check struct {
	Name     string `json:"name"`
	OK       bool   `json:"ok"`
	Required bool   `json:"required"`
	Detail   string `json:"detail,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

// Report groups the probes of one doctor run.
type Report struct {
	Checks []Check `json:"checks"`
	// Packager is the first package manager found in probe order; etch new
	// uses it as the default.
	Packager string `json:"packager,omitempty"`
}

// Failed reports whether any required probe failed.
func (r Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Required && !c.OK {
			return true
		}
	}
	return false
}

// Run executes every probe.
func Run() Report {
	var r Report
	add := func(c Check) { r.Checks = append(r.Checks, c) }

	git := lookPath("git", "install git to version your projects")
	git.Required = true
	add(git)

	node := lookPath("node", "install Node.js 18 or newer to run scaffolded apps")
	node.Required = true
	add(node)

	for _, p := range scaffold.PackagerOrder {
		c := lookPath(p, "")
		if c.OK && r.Packager == "" {
			r.Packager = p
		}
		add(c)
	}
	pkg := Check{Name: "packager", OK: r.Packager != "", Required: true, Detail: r.Packager}
	if !pkg.OK {
		pkg.Hint = "install one of: " + strings.Join(scaffold.PackagerOrder, ", ")
	}
	add(pkg)

	add(androidSDK())
	add(terminalCheck())
	return r
}

// DetectPackager returns the first package manager present on PATH, probing
// in the fixed PackagerOrder.
func DetectPackager() string {
	for _, p := range scaffold.PackagerOrder {
		if _, err := exec.LookPath(p); err == nil {
			return p
		}
	}
	return ""
}

func lookPath(tool, hint string) Check {
	path, err := exec.LookPath(tool)
	if err != nil {
		return Check{Name: tool, Hint: hint}
	}
	return Check{Name: tool, OK: true, Detail: path}
}

func androidSDK() Check {
	for _, env := range []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"} {
		dir := os.Getenv(env)
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return Check{Name: "android-sdk", OK: true, Detail: env + "=" + dir}
		}
		return Check{
			Name:   "android-sdk",
			Detail: env + "=" + dir,
			Hint:   env + " points at a missing directory",
		}
	}
	return Check{Name: "android-sdk", Hint: "set ANDROID_HOME to build for Android"}
}

func terminalCheck() Check {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return Check{
			Name: "terminal",
			Hint: "stdout is not a TTY; progress UI falls back to plain output",
		}
	}
	c := Check{Name: "terminal", OK: true}
	if w, h, err := term.GetSize(fd); err == nil {
		c.Detail = fmt.Sprintf("%dx%d", w, h)
	}
	return c
}
