// Package prompt renders the per-flow prompt templates.
package prompt

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

//go:embed templates/*.tpl
var embedded embed.FS

const systemTemplate = "system"

// Library loads templates by flow name. Files in the override directory
// shadow the embedded defaults with the same name.
type Library struct {
	set *pongo2.TemplateSet

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
	sf    singleflight.Group
}

// NewLibrary builds a library. An empty overrideDir uses only the embedded
// templates.
func NewLibrary(overrideDir string) (*Library, error) {
	defaults, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("prompt templates: %w", err)
	}

	var loaders []pongo2.TemplateLoader
	if overrideDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(overrideDir)
		if err != nil {
			return nil, fmt.Errorf("prompt dir %q: %w", overrideDir, err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(defaults))

	set := pongo2.NewSet("prompts", loaders...)
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true

	return &Library{
		set:   set,
		cache: make(map[string]*pongo2.Template),
	}, nil
}

func (l *Library) get(name string) (*pongo2.Template, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.cache[name]
	return t, ok
}

// template compiles name once; concurrent first callers share the compile.
func (l *Library) template(name string) (*pongo2.Template, error) {
	if t, ok := l.get(name); ok {
		return t, nil
	}

	v, err, _ := l.sf.Do(name, func() (interface{}, error) {
		if t, ok := l.get(name); ok {
			return t, nil
		}
		t, err := l.set.FromFile(name + ".tpl")
		if err != nil {
			return nil, fmt.Errorf("load prompt template %q: %w", name, err)
		}
		l.mu.Lock()
		l.cache[name] = t
		l.mu.Unlock()
		log.Debug().Str("template", name).Msg("prompt template compiled")
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pongo2.Template), nil
}

// Render fills the named template with the JSON fields of data.
func (l *Library) Render(name string, data any) (string, error) {
	t, err := l.template(name)
	if err != nil {
		return "", err
	}
	ctx, err := Context(data)
	if err != nil {
		return "", err
	}
	out, err := t.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

// System renders the shared instruction that binds the model to outputSchema.
func (l *Library) System(outputSchema map[string]any) (string, error) {
	raw, err := json.MarshalIndent(outputSchema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal output schema: %w", err)
	}
	return l.Render(systemTemplate, map[string]any{"schema": string(raw)})
}

// Context converts data to a template context keyed by its JSON field names.
// Numbers keep their literal form, so 6.5 renders as "6.5".
func Context(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	if ctx, ok := data.(pongo2.Context); ok {
		return ctx, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("prompt context: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("prompt context: %w", err)
	}
	return pongo2.Context(m), nil
}
