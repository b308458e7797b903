package scaffold

import "strings"

// Boilerplate sources carry these literal tokens; materialization rewrites
// them for the requested project.
const (
	placeholderBundle  = "com.example.boilerplate"
	placeholderDisplay = "BoilerplateApp"
)

// PatchContent rewrites the boilerplate placeholder tokens for data. Plain
// string substitution: the tokens are chosen so they cannot collide with
// legitimate file content.
func PatchContent(text string, data Data) string {
	if data.Bundle != "" {
		text = strings.ReplaceAll(text, placeholderBundle, data.Bundle)
	}
	if data.Pascal != "" {
		text = strings.ReplaceAll(text, placeholderDisplay, data.Pascal)
	}
	return text
}

// PackagerOrder is the probe order used when picking a default packager.
var PackagerOrder = []string{"npm", "yarn", "pnpm", "bun"}

// packagerCommands maps a packager onto its install invocation and the
// prefix that runs a package.json script.
var packagerCommands = map[string]struct{ install, run string }{
	"npm":  {"npm install", "npm run"},
	"yarn": {"yarn", "yarn"},
	"pnpm": {"pnpm install", "pnpm"},
	"bun":  {"bun install", "bun run"},
}

// KnownPackager reports whether name is a supported package manager.
func KnownPackager(name string) bool {
	_, ok := packagerCommands[name]
	return ok
}

// InstallCommand returns the packager's dependency install invocation,
// falling back to the npm form for unknown packagers.
func InstallCommand(packager string) string {
	if cmds, ok := packagerCommands[packager]; ok {
		return cmds.install
	}
	return packagerCommands["npm"].install
}

// RunCommand returns the packager's invocation for a package.json script.
func RunCommand(packager, script string) string {
	cmds, ok := packagerCommands[packager]
	if !ok {
		cmds = packagerCommands["npm"]
	}
	return cmds.run + " " + script
}

// RewritePackagerCommands rewrites npm command lines for the chosen packager.
// The boilerplate documents npm; the other packagers substitute their own
// install and script-runner forms line by line, keeping indentation.
func RewritePackagerCommands(text, packager string) string {
	cmds, ok := packagerCommands[packager]
	if !ok || packager == "npm" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		switch {
		case trimmed == "npm install":
			lines[i] = indent + cmds.install
		case strings.HasPrefix(trimmed, "npm run "):
			lines[i] = indent + cmds.run + " " + strings.TrimPrefix(trimmed, "npm run ")
		}
	}
	return strings.Join(lines, "\n")
}
