package overlay

import "strings"

// Template pairs the markup preamble with the root of an entry tree.
type Template struct {
	// Helpers are emitted verbatim before the rendered tree. They declare
	// the color, alignment and size aliases the entries refer to.
	Helpers []string

	// Root is the entry tree rendered for each refresh.
	Root Entry
}

// Clone returns a deep copy so callers can edit a template without touching
// the built-in one.
func (t Template) Clone() Template {
	return Template{
		Helpers: append([]string(nil), t.Helpers...),
		Root:    t.Root.Clone(),
	}
}

// Preamble returns the concatenated helper markup.
func (t Template) Preamble() string {
	return strings.Join(t.Helpers, "")
}

// Default returns a copy of the built-in overlay layout.
func Default() Template {
	return defaultTemplate.Clone()
}

// DefaultHelpers returns the built-in preamble: color aliases C0..C250,
// alignment offsets A0..A2 and size steps S0..S1.
func DefaultHelpers() []string {
	return append([]string(nil), defaultTemplate.Helpers...)
}

var (
	hideCompact = []Mode{FPS, Minimal}

	defaultTemplate = Template{
		Helpers: []string{
			"<C0=008040><C1=0080C0><C2=C08080><C3=FF0000><C4=FFFFFF><C250=FF8000>",
			"<A0=-4><A1=5><A2=-2><S0=-50><S1=50>",
		},
		Root: Entry{
			Separator: "\r\n",
			Children: []Entry{
				{Text: "<C4><FR><C><A><A1><S1><C4> FPS", Include: []Mode{FPS}},

				{
					Include:   []Mode{Minimal},
					Separator: "<C250>|<C> ",
					Children: []Entry{
						{
							Text: "<C1>BATT<C>",
							Children: []Entry{
								{Text: "<C4><A0>{BATT_%}<A><A1><S1> %<S><A>"},
								{Text: "<C4><A0>{BATT_W}<A><A1><S1> W<S><A>"},
							},
						},
						{
							Text: "<C1>GPU<C>",
							Children: []Entry{
								{Text: "<C4><A0>{GPU_%}<A><A1><S1> %<S><A>"},
								{Text: "<C4><A0>{GPU_W}<A><A1><S1> W<S><A>"},
								{Text: "<C4><A0>{GPU_T}<A><A1><S1> C<S><A>", IgnoreMissing: true},
							},
						},
						{
							Text: "<C1>CPU<C>",
							Children: []Entry{
								{Text: "<C4><A0>{CPU_%}<A><A1><S1> %<S><A>"},
								{Text: "<C4><A0>{CPU_W}<A><A1><S1> W<S><A>"},
								{Text: "<C4><A0>{CPU_T}<A><A1><S1> C<S><A>", IgnoreMissing: true},
							},
						},
						{
							Text: "<C1>RAM<C>",
							Children: []Entry{
								{Text: "<C4><A0>{MEM_GB}<A><A1><S1> GiB<S><A>"},
							},
						},
						{
							Text: "<C2><APP><C>",
							Children: []Entry{
								{Text: "<A0><C4><FR><C><A><A1><S1><C4> FPS<C><S><A>"},
							},
						},
						{Text: "<C2><OBJ><C>"},
					},
				},

				{Text: "<C0>MEM<C>   <A0>{MEM_MB}<A><A1><S1> MB<S>", Exclude: hideCompact},
				{Text: "<C1>CPU<C>   <A0>{CPU_%}<A><A1><S1> %<S><A>", Exclude: hideCompact},
				{Text: "<C1>RAM<C>   <A0>{GPU_MB}<A><A1><S1> MB<S><A>", Exclude: hideCompact},
				{
					Text:    "<C2><APP><C> <A0><C4><FR><C><A><A1><S1><C4> FPS<C><S><A> <A0><C4><FT><C><A><A1><S1><C4> ms<C><S><A>",
					Exclude: hideCompact,
				},
				{
					Text:    "<C1>BAT<C>  ",
					Exclude: hideCompact,
					Children: []Entry{
						{Text: "<A0>{BATT_%}<A><A1><S1> %<S><A>"},
						{Text: "<A0>{BATT_W}<A><A1><S1> W<S><A>"},
					},
				},
				{Text: "<C2><S1>Frametime<S>", Exclude: hideCompact},
				{Text: "<OBJ>", Exclude: hideCompact},
				{Text: "<S1> <A0><FT><A><A1> ms<A><S><C>", Exclude: hideCompact},
			},
		},
	}
)
