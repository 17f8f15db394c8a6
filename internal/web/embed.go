// Package web carries the embedded single-page UI.
package web

import "embed"

//go:embed index.html
var Assets embed.FS

// IndexHTML returns the UI page bytes.
func IndexHTML() []byte {
	data, err := Assets.ReadFile("index.html")
	if err != nil {
		return nil
	}
	return data
}
