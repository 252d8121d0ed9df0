package theme

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestEnqueueKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	st := NewState(nil, nil, nil)
	mustEnqueue(t, st.EnqueueStyle("style", ""))
	mustEnqueue(t, st.EnqueueScript("admin", ""))
	mustEnqueue(t, st.EnqueueStyle("fonts", ""))
	mustEnqueue(t, st.EnqueueStyle("style", "/custom.css"))

	got := st.Assets().List()
	want := []Asset{
		{Type: CSS, Name: "style", Src: "/custom.css"},
		{Type: CSS, Name: "fonts"},
		{Type: JS, Name: "admin"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d assets, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("asset %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestEnqueueRejectsUnknownType(t *testing.T) {
	t.Parallel()

	st := NewState(nil, nil, nil)
	err := st.EnqueueAsset("logo", "/logo.png", AssetType("png"))
	if !errors.Is(err, ErrUnsupportedAssetType) {
		t.Fatalf("expected ErrUnsupportedAssetType, got %v", err)
	}
	notices := st.Notices()
	if len(notices) != 1 || notices[0].Level != NoticeError {
		t.Fatalf("expected one error notice, got %+v", notices)
	}
	if len(st.Assets().List()) != 0 {
		t.Fatalf("expected queue to stay empty")
	}
}

func TestDequeueAsset(t *testing.T) {
	t.Parallel()

	st := NewState(nil, nil, nil)
	mustEnqueue(t, st.EnqueueScript("admin", ""))

	tests := []struct {
		name      string
		asset     string
		assetType AssetType
		want      bool
	}{
		{name: "wrong type", asset: "admin", assetType: CSS, want: false},
		{name: "bad type", asset: "admin", assetType: AssetType("img"), want: false},
		{name: "unknown name", asset: "other", assetType: JS, want: false},
		{name: "queued", asset: "admin", assetType: JS, want: true},
		{name: "already removed", asset: "admin", assetType: JS, want: false},
	}
	for _, tc := range tests {
		if got := st.DequeueAsset(tc.asset, tc.assetType); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAssetTagsRendersQueue(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, nil, nil)
	st := m.NewState(nil)
	mustEnqueue(t, st.EnqueueStyle("style", ""))
	mustEnqueue(t, st.EnqueueScript("admin", ""))
	mustEnqueue(t, st.EnqueueStyle("evil", "javascript:alert(1)"))
	mustEnqueue(t, st.EnqueueStyle("blue", "http://sho.rt/user/themes/blue/theme.css?a=1&b=2"))

	var buf bytes.Buffer
	if err := m.AssetTags(st).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		`<link rel="stylesheet" href="http://sho.rt/assets/css/style.min.css?v=1.2" type="text/css" media="screen">`,
		`<link rel="stylesheet" href="http://sho.rt/user/themes/blue/theme.css?a=1&amp;b=2" type="text/css" media="screen">`,
		`<script src="http://sho.rt/assets/js/admin.min.js?v=1.2" type="text/javascript"></script>`,
	}, "")
	if buf.String() != want {
		t.Fatalf("unexpected tags:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestAssetTagsAppliesFilter(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, nil, nil)
	st := m.NewState(nil)
	mustEnqueue(t, st.EnqueueStyle("style", ""))
	st.Hooks.AddFilter(FilterAssetsQueue, func(_ context.Context, value any, _ ...any) any {
		assets := value.([]Asset)
		return append(assets, Asset{Type: AssetType("img"), Name: "bad", Src: "/x.png"}, Asset{Type: JS, Name: "extra", Src: "/extra.js"})
	}, 10)

	var buf bytes.Buffer
	if err := m.AssetTags(st).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `<script src="/extra.js"`) {
		t.Fatalf("expected filtered script, got %s", out)
	}
	if strings.Contains(out, "x.png") {
		t.Fatalf("expected unsupported asset to be skipped, got %s", out)
	}
	if len(st.Notices()) != 1 {
		t.Fatalf("expected a notice for the skipped asset, got %+v", st.Notices())
	}
}

func mustEnqueue(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
}
