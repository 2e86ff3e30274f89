package templates

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stelofinance/homepage/internal/assets"
)

var ErrTemplateNotFound = errors.New("templates: template not found")

// Tmpls holds the shared layouts and one clone of them per page, so pages
// can each override the layout blocks ("head", "main") independently.
type Tmpls struct {
	layouts *template.Template
	pages   map[string]*template.Template
}

// LoadTemplates parses every layouts/* template under prefix, then every
// pages/* template on top of its own copy of the layouts. Names are the path
// without prefix and extension, e.g. "pages/homepage".
func LoadTemplates(fsys fs.FS, prefix, extension string, static *assets.Assets) (*Tmpls, error) {
	layouts := template.New("").Funcs(template.FuncMap{
		"hash_asset_path": static.HashedPath,
	})
	if err := parseEach(fsys, prefix, "layouts", extension, func(name, text string) error {
		_, err := layouts.New(name).Parse(text)
		return err
	}); err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	if err := parseEach(fsys, prefix, "pages", extension, func(name, text string) error {
		page, err := layouts.Clone()
		if err != nil {
			return err
		}
		if _, err := page.New(name).Parse(text); err != nil {
			return err
		}
		pages[name] = page
		return nil
	}); err != nil {
		return nil, err
	}

	return &Tmpls{layouts: layouts, pages: pages}, nil
}

func parseEach(fsys fs.FS, prefix, dir, extension string, parse func(name, text string) error) error {
	paths, err := doublestar.Glob(fsys, prefix+dir+"/**/*"+extension)
	if err != nil {
		return err
	}
	for _, p := range paths {
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, prefix), extension)
		if err := parse(name, string(b)); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteTemplate renders a page, or a bare layout by name.
func (t *Tmpls) ExecuteTemplate(wr io.Writer, name string, data any) error {
	if page, ok := t.pages[name]; ok {
		return page.ExecuteTemplate(wr, name, data)
	}
	if layout := t.layouts.Lookup(name); layout != nil {
		return layout.Execute(wr, data)
	}
	return ErrTemplateNotFound
}
