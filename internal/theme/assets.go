package theme

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	applog "shorty/internal/log"
	"shorty/internal/sanitize"
)

// AssetType is the kind of file an asset points to.
type AssetType string

// Supported asset types.
const (
	CSS AssetType = "css"
	JS  AssetType = "js"
)

// Valid reports whether t can be queued.
func (t AssetType) Valid() bool {
	return t == CSS || t == JS
}

// Asset is a queued stylesheet or script. An empty Src designates a core asset.
type Asset struct {
	Type AssetType
	Name string
	Src  string
}

// AssetQueue keeps assets in insertion order, grouped by type in the order
// each type was first queued.
type AssetQueue struct {
	types []AssetType
	items map[AssetType][]Asset
}

func newAssetQueue() *AssetQueue {
	return &AssetQueue{items: make(map[AssetType][]Asset)}
}

// set queues a, replacing the source of an asset already queued under the same name.
func (q *AssetQueue) set(a Asset) {
	list, seen := q.items[a.Type]
	if !seen {
		q.types = append(q.types, a.Type)
	}
	for i := range list {
		if list[i].Name == a.Name {
			list[i].Src = a.Src
			return
		}
	}
	q.items[a.Type] = append(list, a)
}

func (q *AssetQueue) remove(t AssetType, name string) bool {
	list := q.items[t]
	for i := range list {
		if list[i].Name == name {
			q.items[t] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether an asset is queued.
func (q *AssetQueue) Has(t AssetType, name string) bool {
	for _, a := range q.items[t] {
		if a.Name == name {
			return true
		}
	}
	return false
}

// List returns a copy of the queue in emission order.
func (q *AssetQueue) List() []Asset {
	var out []Asset
	for _, t := range q.types {
		out = append(out, q.items[t]...)
	}
	return out
}

// EnqueueAsset adds an asset to the request queue.
func (s *State) EnqueueAsset(name, src string, t AssetType) error {
	if !t.Valid() {
		s.AddNotice(NoticeError, s.T(msgOnlyCSSJS))
		return fmt.Errorf("%w: %q", ErrUnsupportedAssetType, t)
	}
	s.assets.set(Asset{Type: t, Name: name, Src: src})
	return nil
}

// EnqueueStyle queues a stylesheet.
func (s *State) EnqueueStyle(name, src string) error {
	return s.EnqueueAsset(name, src, CSS)
}

// EnqueueScript queues a script.
func (s *State) EnqueueScript(name, src string) error {
	return s.EnqueueAsset(name, src, JS)
}

// DequeueAsset removes an asset and reports whether it was queued.
func (s *State) DequeueAsset(name string, t AssetType) bool {
	if !t.Valid() {
		return false
	}
	return s.assets.remove(t, name)
}

// DequeueStyle removes a queued stylesheet.
func (s *State) DequeueStyle(name string) bool {
	return s.DequeueAsset(name, CSS)
}

// DequeueScript removes a queued script.
func (s *State) DequeueScript(name string) bool {
	return s.DequeueAsset(name, JS)
}

// AssetTags renders the link and script tags for the queued assets after
// passing the list through the html_assets_queue filter.
func (m *Manager) AssetTags(st *State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		assets := st.assets.List()
		if filtered, ok := st.Hooks.ApplyFilter(ctx, FilterAssetsQueue, assets).([]Asset); ok {
			assets = filtered
		}

		for _, a := range assets {
			if !a.Type.Valid() {
				st.AddNotice(NoticeError, st.T(msgOnlyCSSJS))
				continue
			}
			src := a.Src
			if src == "" {
				src = m.coreAssetURL(a)
			}
			src = sanitize.URL(src)
			if src == "" {
				applog.Debug(ctx, "skipping asset with unusable source", "name", a.Name, "type", string(a.Type))
				continue
			}

			tag := scriptTag(src)
			if a.Type == CSS {
				tag = stylesheetTag(src)
			}
			if err := tag.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// coreAssetURL points at the minified file bundled with the application.
func (m *Manager) coreAssetURL(a Asset) string {
	return fmt.Sprintf("%s/assets/%s/%s.min.%s?v=%s", m.cfg.SiteURL, a.Type, a.Name, a.Type, m.cfg.Version)
}
