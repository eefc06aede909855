// Package templates embeds the default template bodies used by the generator.
package templates

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Ext is the file extension of template bodies.
const Ext = ".html"

//go:embed builder/*.html
var builderTemplates embed.FS

// Get returns the embedded template body with the given name.
func Get(name string) (string, error) {
	content, err := builderTemplates.ReadFile(path.Join("builder", name+Ext))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Names returns the names of all embedded templates, sorted.
func Names() []string {
	entries, err := fs.ReadDir(builderTemplates, "builder")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names
}
