package assets

import "embed"

//go:embed static
var staticFS embed.FS

// StaticFS holds the shell's stylesheet and script under static/.
func StaticFS() embed.FS {
	return staticFS
}
