// Package i18n loads the interface message catalogs and hands out printers.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source language of every message key.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds every registered translation.
type Catalog struct {
	builder *catalog.Builder
	tags    []language.Tag
}

var defaultCatalog = mustLoadEmbedded()

func mustLoadEmbedded() *Catalog {
	c, err := LoadFromFS(embeddedLocales)
	if err != nil {
		panic(fmt.Sprintf("i18n: load embedded catalogs: %v", err))
	}
	return c
}

// Default returns the catalog built from the embedded locale files.
func Default() *Catalog {
	return defaultCatalog
}

// LoadFromFS reads locales/*.yaml from fsys.
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	base := language.MustParse(BaseLocale)
	c := &Catalog{builder: catalog.NewBuilder(catalog.Fallback(base))}
	seenBase := false

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale %q: %w", path, file.Locale, err)
		}
		for key, value := range file.Messages {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("catalog %s: message key cannot be blank", path)
			}
			if err := c.builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("catalog %s: set %q: %w", path, key, err)
			}
		}
		if tag == base {
			seenBase = true
		}
		c.tags = append(c.tags, tag)
	}

	if !seenBase {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return c, nil
}

// Printer formats messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// Printer returns a printer for locale; unknown locales use BaseLocale.
func (c *Catalog) Printer(locale string) *Printer {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.MustParse(BaseLocale)
	}
	matched, _, _ := language.NewMatcher(c.tags).Match(tag)
	return &Printer{tag: matched, p: message.NewPrinter(matched, message.Catalog(c.builder))}
}

// Sprintf formats the message registered under key. Keys without a
// translation are used as the format itself.
func (p *Printer) Sprintf(key string, args ...any) string {
	if p == nil || p.p == nil {
		return fmt.Sprintf(key, args...)
	}
	return p.p.Sprintf(key, args...)
}

// Locale returns the language this printer formats for.
func (p *Printer) Locale() string {
	if p == nil {
		return BaseLocale
	}
	return p.tag.String()
}
