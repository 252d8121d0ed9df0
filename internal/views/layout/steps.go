package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"shorty/internal/links"
	applog "shorty/internal/log"
	"shorty/internal/theme"
	"shorty/internal/views/components"
)

// Page contexts that change what the default steps render.
const (
	ContextLogin  = "login"
	ContextAdmin  = "admin"
	ContextThemes = "themes"
)

// TotalsSource provides the figures of the global_stats step.
type TotalsSource interface {
	Totals(ctx context.Context) (links.Totals, error)
}

// Options configures the default steps.
type Options struct {
	Stats   TotalsSource
	Version string
}

// DefaultSteps returns a registry holding every step of the stock layout.
func DefaultSteps(opts Options) *theme.Steps {
	s := theme.NewSteps()
	s.Register(theme.StepSidebarStart, static(`<div class="admin-shell"><aside class="sidebar">`+"\n"))
	s.Register(theme.StepLogo, logo)
	s.Register(theme.StepGlobalStats, globalStats(opts.Stats))
	s.Register(theme.StepMenu, menu)
	s.Register(theme.StepFooter, footer(opts.Version))
	s.Register(theme.StepSidebarEnd, static("</aside>\n"))
	s.Register(theme.StepWrapperStart, wrapperStart)
	s.Register(theme.StepWrapperEnd, static("</main>\n</div>\n"))
	s.Register(theme.StepEnding, static("</body>\n</html>\n"))
	return s
}

func static(markup string) theme.Step {
	return func(context.Context, theme.Page) templ.Component {
		return templ.Raw(markup)
	}
}

func logo(_ context.Context, page theme.Page) templ.Component {
	return logoMarkup(page.State.T("Admin interface"))
}

func globalStats(stats TotalsSource) theme.Step {
	return func(_ context.Context, page theme.Page) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
			if stats == nil || page.Context == ContextLogin {
				return nil
			}
			totals, err := stats.Totals(ctx)
			if err != nil {
				applog.Error(ctx, "failed to load link totals", "error", err)
				return nil
			}
			return statsLine(page.State.T("Display %s links, %s clicks",
				humanize.Comma(totals.Links), humanize.Comma(totals.Clicks))).Render(ctx, out)
		})
	}
}

func menu(_ context.Context, page theme.Page) templ.Component {
	if page.Context == ContextLogin {
		return templ.NopComponent
	}
	st := page.State
	return components.Nav(page.Context, []components.NavLink{
		{Label: st.T("Admin interface"), Path: "/admin", Section: ContextAdmin},
		{Label: st.T("Manage Themes"), Path: "/admin/themes", Section: ContextThemes},
		{Label: st.T("Logout"), Path: "/logout", Section: "logout"},
	})
}

func footer(version string) theme.Step {
	return func(_ context.Context, page theme.Page) templ.Component {
		return footerNote(page.State.T("Powered by %s", "shorty "+version))
	}
}

func wrapperStart(_ context.Context, page theme.Page) templ.Component {
	return templ.Join(
		templ.Raw(`<main class="wrapper" data-context="`+templ.EscapeString(page.Context)+`">`),
		components.Notices(page.State.Notices()),
	)
}
