// Package layout assembles admin pages from the theme's render steps.
package layout

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"

	applog "shorty/internal/log"
	"shorty/internal/theme"
)

// Document renders a full admin page: the head with queued assets, the
// before part, content, then the after part. A part whose layout names an
// unknown step falls back to the stock layout so the admin stays usable.
//
// The before part renders last because wrapper_start prints the notices,
// and the head, the content and the after part may all still raise some.
func Document(m *theme.Manager, st *theme.State, page theme.Page, content templ.Component) templ.Component {
	page.State = st
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		var head, before, body, after bytes.Buffer
		if err := documentHead(title(page), m.AssetTags(st)).Render(ctx, &head); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, &body); err != nil {
				return err
			}
		}
		if err := renderPart(ctx, m, st, &after, theme.PartAfter, page); err != nil {
			return err
		}
		if err := renderPart(ctx, m, st, &before, theme.PartBefore, page); err != nil {
			return err
		}

		return templ.Join(
			templ.Raw("<!DOCTYPE html>\n<html lang=\""+templ.EscapeString(st.Printer().Locale())+"\">"),
			templ.Raw(head.String()),
			templ.Raw("<body class=\""+templ.EscapeString(page.Context)+"\">"),
			templ.Raw(before.String()),
			templ.Raw(body.String()),
			templ.Raw(after.String()),
		).Render(ctx, out)
	})
}

func renderPart(ctx context.Context, m *theme.Manager, st *theme.State, w *bytes.Buffer, part string, page theme.Page) error {
	err := m.RenderTemplateContent(ctx, w, st, part, page)
	var unknown *theme.UnknownStepsError
	if !errors.As(err, &unknown) {
		return err
	}
	applog.Warn(ctx, "layout names undefined steps, using default layout",
		"part", part, "steps", unknown.Names, "available", st.Steps().Names())
	w.Reset()
	return m.RenderDefaultContent(ctx, w, st, part, page)
}

func title(page theme.Page) string {
	if page.Title == "" {
		return "shorty"
	}
	return page.Title + " | shorty"
}
