// Package extensions holds the theme extensions compiled into shorty. A
// theme opts into one by naming it in its theme.toml:
//
//	extension = "compact"
package extensions

import (
	"context"
	"slices"

	"github.com/a-h/templ"

	"shorty/internal/hooks"
	applog "shorty/internal/log"
	"shorty/internal/theme"
)

// Extension names.
const (
	Compact = "compact"
	Banner  = "banner"
)

// StepBanner is the step added by the banner extension.
const StepBanner = "theme_banner"

// Register adds the built-in extensions to r.
func Register(r *theme.ExtensionRegistry) {
	r.Register(Compact, theme.ExtensionFunc(compact))
	r.Register(Banner, theme.ExtensionFunc(banner))
}

// compact drops the web fonts and the sidebar statistics and footer.
func compact(_ context.Context, caps *theme.Capabilities) error {
	caps.DequeueStyle("fonts")
	caps.AddFilter(theme.FilterTemplateContent, func(_ context.Context, value any, args ...any) any {
		layout, ok := value.(theme.Layout)
		if !ok {
			return value
		}
		layout[theme.PartBefore] = slices.DeleteFunc(slices.Clone(layout[theme.PartBefore]), func(name string) bool {
			return name == theme.StepGlobalStats || name == theme.StepFooter
		})
		return layout
	}, hooks.DefaultPriority)
	return nil
}

// banner shows the theme's name above the page content.
func banner(_ context.Context, caps *theme.Capabilities) error {
	name := caps.Theme
	caps.RegisterStep(StepBanner, func(_ context.Context, page theme.Page) templ.Component {
		return bannerMarkup(name)
	})
	caps.AddFilter(theme.FilterTemplateContent, func(_ context.Context, value any, args ...any) any {
		layout, ok := value.(theme.Layout)
		if !ok {
			return value
		}
		layout[theme.PartBefore] = append(slices.Clone(layout[theme.PartBefore]), StepBanner)
		return layout
	}, hooks.DefaultPriority)
	caps.AddAction(theme.ActionDeactivatedTheme, func(ctx context.Context, args ...any) {
		applog.Debug(ctx, "banner theme deactivated", "theme", name)
	}, hooks.DefaultPriority)
	return nil
}
