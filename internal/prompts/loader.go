// Package prompts holds the completion prompt templates. Each embedded JSON file maps a key
// to a template whose {{.Name}} placeholders are filled by Render.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var placeholderRe = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

var (
	loadOnce sync.Once
	library  map[string]map[string]string
	loadErr  error
)

// load parses every embedded template file once.
func load() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		names, err := fs.Glob(files, "*.json")
		if err != nil {
			loadErr = err
			return
		}
		lib := make(map[string]map[string]string, len(names))
		for _, name := range names {
			data, err := files.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", name, err)
				return
			}
			var templates map[string]string
			if err := json.Unmarshal(data, &templates); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", name, err)
				return
			}
			lib[name] = templates
		}
		library = lib
	})
	return library, loadErr
}

// Get returns the raw template stored under key in file (e.g. "suggestions.json").
func Get(file, key string) (string, error) {
	lib, err := load()
	if err != nil {
		return "", err
	}
	templates, ok := lib[file]
	if !ok {
		return "", fmt.Errorf("prompt file %s not found", file)
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return tmpl, nil
}

// Keys returns the template keys of file, sorted.
func Keys(file string) ([]string, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	templates, ok := lib[file]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", file)
	}
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Placeholders returns the distinct placeholder names used in tmpl, sorted.
func Placeholders(tmpl string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Render fills the template file:key from data. Every placeholder needs a value;
// extra data entries are ignored.
func Render(file, key string, data map[string]string) (string, error) {
	tmpl, err := Get(file, key)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, name := range Placeholders(tmpl) {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %s:%s has unfilled placeholders: %s", file, key, strings.Join(missing, ", "))
	}

	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		return data[placeholderRe.FindStringSubmatch(m)[1]]
	}), nil
}
