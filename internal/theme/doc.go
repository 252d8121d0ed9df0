// Package theme renders admin pages through named render steps, queues the
// CSS and JS assets a page needs, and manages the single active theme.
//
// All per-request data lives in a *State created by Manager.NewState: the
// asset queue, notices for the user, the cached active theme, and private
// copies of the hook dispatcher and step registry that a theme extension may
// extend while it loads.
//
// A theme is a directory below the themes directory holding a readable
// theme.css. It may carry a theme.toml manifest and a screenshot. Behaviour
// is contributed by a Go Extension registered under the theme's name (or the
// name its manifest declares); Setup receives a Capabilities value whose
// registrations are applied only when Setup succeeds.
package theme
