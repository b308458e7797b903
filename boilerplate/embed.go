// Package boilerplate embeds the application template tree and the default
// generator templates shipped with etch.
package boilerplate

import (
	"embed"
	"io/fs"
)

//go:embed all:app all:generators
var templatesFS embed.FS

// App exposes the embedded application boilerplate tree.
func App() fs.FS {
	sub, err := fs.Sub(templatesFS, "app")
	if err != nil {
		panic(err)
	}
	return sub
}

// Generators exposes the embedded default generator templates, one directory
// per generator name.
func Generators() fs.FS {
	sub, err := fs.Sub(templatesFS, "generators")
	if err != nil {
		panic(err)
	}
	return sub
}
