package overlay

import (
	"strings"
	"sync"
	"testing"

	"github.com/rileyhilliard/osd/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	colorHelpers = "<C0=008040><C1=0080C0><C2=C08080><C3=FF0000><C4=FFFFFF><C250=FF8000>"
	layoutHelper = "<A0=-4><A1=5><A2=-2><S0=-50><S1=50>"
	preamble     = colorHelpers + layoutHelper
	fpsLine      = "<C4><FR><C><A><A1><S1><C4> FPS"
)

func fullMetrics() metrics.Source {
	return metrics.NewMap(map[string]string{
		"BATT_%": "87",
		"BATT_W": "12.3",
		"CPU_%":  "25",
		"CPU_W":  "15.0",
		"CPU_T":  "55",
		"GPU_%":  "50",
		"GPU_W":  "185.5",
		"GPU_T":  "70",
		"GPU_MB": "8192",
		"MEM_MB": "7813",
		"MEM_GB": "7.6",
	})
}

func TestDefaultHelpers(t *testing.T) {
	assert.Equal(t, []string{colorHelpers, layoutHelper}, DefaultHelpers())
	assert.Equal(t, preamble, Default().Preamble())
}

func TestRenderOverlay_StartsWithPreamble(t *testing.T) {
	sources := map[string]metrics.Source{
		"empty": metrics.Map{},
		"full":  fullMetrics(),
		"nil":   nil,
	}

	for name, src := range sources {
		for _, m := range Modes() {
			t.Run(name+"/"+m.String(), func(t *testing.T) {
				assert.True(t, strings.HasPrefix(RenderOverlay(m, src), preamble))
			})
		}
	}
}

func TestRenderOverlay_FPS(t *testing.T) {
	// The frame-rate marker is renderer markup and never substituted.
	for _, src := range []metrics.Source{metrics.Map{}, fullMetrics(), metrics.NewMap(map[string]string{"FR": "60"})} {
		assert.Equal(t, preamble+fpsLine, RenderOverlay(FPS, src))
	}
}

func TestRenderOverlay_Minimal(t *testing.T) {
	sep := "<C250>|<C> "
	value := func(v, unit string) string {
		return "<C4><A0>" + v + "<A><A1><S1> " + unit + "<S><A>"
	}
	app := "<C2><APP><C><A0><C4><FR><C><A><A1><S1><C4> FPS<C><S><A>"
	obj := "<C2><OBJ><C>"

	t.Run("full metrics", func(t *testing.T) {
		want := preamble + strings.Join([]string{
			"<C1>BATT<C>" + value("87", "%") + value("12.3", "W"),
			"<C1>GPU<C>" + value("50", "%") + value("185.5", "W") + value("70", "C"),
			"<C1>CPU<C>" + value("25", "%") + value("15.0", "W") + value("55", "C"),
			"<C1>RAM<C>" + value("7.6", "GiB"),
			app,
			obj,
		}, sep)

		assert.Equal(t, want, RenderOverlay(Minimal, fullMetrics()))
	})

	t.Run("no metrics", func(t *testing.T) {
		// Temperatures are dropped, every other value shows a dash.
		want := preamble + strings.Join([]string{
			"<C1>BATT<C>" + value("-", "%") + value("-", "W"),
			"<C1>GPU<C>" + value("-", "%") + value("-", "W"),
			"<C1>CPU<C>" + value("-", "%") + value("-", "W"),
			"<C1>RAM<C>" + value("-", "GiB"),
			app,
			obj,
		}, sep)

		got := RenderOverlay(Minimal, metrics.Map{})
		assert.Equal(t, want, got)
		assert.NotContains(t, got, "\r\n")
		assert.NotContains(t, got, " C<S>")
	})
}

func TestRenderOverlay_Detail(t *testing.T) {
	want := preamble + strings.Join([]string{
		"<C0>MEM<C>   <A0>7813<A><A1><S1> MB<S>",
		"<C1>CPU<C>   <A0>25<A><A1><S1> %<S><A>",
		"<C1>RAM<C>   <A0>8192<A><A1><S1> MB<S><A>",
		"<C2><APP><C> <A0><C4><FR><C><A><A1><S1><C4> FPS<C><S><A> <A0><C4><FT><C><A><A1><S1><C4> ms<C><S><A>",
		"<C1>BAT<C>  <A0>87<A><A1><S1> %<S><A><A0>12.3<A><A1><S1> W<S><A>",
		"<C2><S1>Frametime<S>",
		"<OBJ>",
		"<S1> <A0><FT><A><A1> ms<A><S><C>",
	}, "\r\n")

	assert.Equal(t, want, RenderOverlay(Detail, fullMetrics()))
	assert.Equal(t, want, RenderOverlay(All, fullMetrics()), "all renders the same lines as detail")
}

func TestRenderOverlay_DetailMissingValues(t *testing.T) {
	got := RenderOverlay(Detail, metrics.Map{})

	assert.Contains(t, got, "<C0>MEM<C>   <A0>-<A><A1><S1> MB<S>")
	assert.Contains(t, got, "<C1>BAT<C>  <A0>-<A><A1><S1> %<S><A><A0>-<A><A1><S1> W<S><A>")
	assert.NotContains(t, got, "{")
}

func TestTemplate_Render(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
		mode Mode
		src  metrics.Source
		want string
	}{
		{
			name: "custom frame counter",
			tmpl: Template{
				Helpers: []string{"<C4=FFFFFF>"},
				Root:    Entry{Text: "{FR} FPS", Include: []Mode{FPS}},
			},
			mode: FPS,
			src:  metrics.NewMap(map[string]string{"FR": "60"}),
			want: "<C4=FFFFFF>60 FPS",
		},
		{
			name: "empty tree yields preamble only",
			tmpl: Template{Helpers: []string{"<A>", "<B>"}},
			mode: Detail,
			want: "<A><B>",
		},
		{
			name: "hidden root yields preamble only",
			tmpl: Template{
				Helpers: []string{"<H>"},
				Root:    Entry{Text: "x", Exclude: []Mode{Minimal}},
			},
			mode: Minimal,
			want: "<H>",
		},
		{
			name: "no helpers",
			tmpl: Template{Root: Entry{Text: "{X}"}},
			mode: All,
			src:  metrics.NewMap(map[string]string{"X": "1"}),
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tmpl.Render(tt.mode, tt.src))
		})
	}
}

func TestDefault_ReturnsIndependentCopy(t *testing.T) {
	before := RenderOverlay(Detail, fullMetrics())

	tmpl := Default()
	tmpl.Helpers[0] = "<changed>"
	tmpl.Root.Children = tmpl.Root.Children[:1]
	tmpl.Root.Children[0].Include[0] = Detail

	assert.Equal(t, before, RenderOverlay(Detail, fullMetrics()))
	assert.Equal(t, preamble, Default().Preamble())
}

func TestRender_Concurrent(t *testing.T) {
	src := fullMetrics()
	want := make(map[Mode]string)
	for _, m := range Modes() {
		want[m] = RenderOverlay(m, src)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := Modes()[i%len(Modes())]
			for j := 0; j < 50; j++ {
				got := RenderOverlay(m, src)
				if got != want[m] {
					assert.Equal(t, want[m], got)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestRender_PreambleBeforeBody(t *testing.T) {
	tmpl := Template{
		Helpers: []string{"<P>"},
		Root:    Entry{Separator: "/", Children: []Entry{{Text: "a"}, {Text: "b"}}},
	}

	got := tmpl.Render(All, nil)
	require.True(t, strings.HasPrefix(got, "<P>"))
	assert.Equal(t, "<P>a/b", got)
}
