package assets

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFS embed.FS

// Static holds the dashboard stylesheet and chart runtime, rooted so that
// "dashboard.css" resolves without the static/ prefix.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
