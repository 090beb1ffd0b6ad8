package overlay

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rileyhilliard/osd/internal/errors"
	"gopkg.in/yaml.v3"
)

// layoutFile is the on-disk shape of a Template.
type layoutFile struct {
	Helpers []string    `yaml:"helpers,omitempty"`
	Root    layoutEntry `yaml:"root"`
}

type layoutEntry struct {
	Text          string        `yaml:"text,omitempty"`
	Include       []string      `yaml:"include,flow,omitempty"`
	Exclude       []string      `yaml:"exclude,flow,omitempty"`
	Separator     string        `yaml:"separator,omitempty"`
	IgnoreMissing bool          `yaml:"ignore_missing,omitempty"`
	Children      []layoutEntry `yaml:"children,omitempty"`
}

// LoadTemplate reads a YAML layout file.
func LoadTemplate(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, errors.WrapWithCode(err, errors.ErrLayout,
			fmt.Sprintf("Can't open layout file %s", path),
			"Check the 'layout' setting in .osd.yaml or the --layout flag")
	}
	defer f.Close()

	t, err := DecodeTemplate(f)
	if err != nil {
		var osdErr *errors.Error
		if stderrors.As(err, &osdErr) {
			osdErr.Message = path + ": " + osdErr.Message
		}
		return Template{}, err
	}
	return t, nil
}

// DecodeTemplate parses a YAML layout. Unknown fields and unknown mode names
// are rejected with an error naming the offending node.
func DecodeTemplate(r io.Reader) (Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var lf layoutFile
	if err := dec.Decode(&lf); err != nil {
		if stderrors.Is(err, io.EOF) {
			return Template{}, errors.New(errors.ErrLayout,
				"Layout is empty",
				"Start from 'osd layout dump' and edit the result")
		}
		return Template{}, errors.WrapWithCode(err, errors.ErrLayout,
			"Layout is not valid YAML",
			"Fields are: text, include, exclude, separator, ignore_missing, children")
	}

	root, err := lf.Root.toEntry("root")
	if err != nil {
		return Template{}, err
	}
	return Template{Helpers: lf.Helpers, Root: root}, nil
}

// EncodeTemplate writes t as a YAML layout that DecodeTemplate accepts.
func EncodeTemplate(w io.Writer, t Template) error {
	lf := layoutFile{
		Helpers: t.Helpers,
		Root:    fromEntry(t.Root),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&lf); err != nil {
		return errors.WrapWithCode(err, errors.ErrLayout, "Failed to encode layout", "")
	}
	return enc.Close()
}

func (le layoutEntry) toEntry(path string) (Entry, error) {
	include, err := parseModes(le.Include, path+".include")
	if err != nil {
		return Entry{}, err
	}
	exclude, err := parseModes(le.Exclude, path+".exclude")
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		Text:          le.Text,
		Include:       include,
		Exclude:       exclude,
		Separator:     le.Separator,
		IgnoreMissing: le.IgnoreMissing,
	}
	if len(le.Children) > 0 {
		e.Children = make([]Entry, len(le.Children))
		for i, child := range le.Children {
			if e.Children[i], err = child.toEntry(childPath(path, i)); err != nil {
				return Entry{}, err
			}
		}
	}
	return e, nil
}

func parseModes(names []string, path string) ([]Mode, error) {
	if len(names) == 0 {
		return nil, nil
	}
	modes := make([]Mode, 0, len(names))
	for _, name := range names {
		m, err := ParseMode(name)
		if err != nil {
			return nil, errors.New(errors.ErrLayout,
				fmt.Sprintf("Unknown mode '%s' at %s", name, path),
				"Use one of: "+strings.Join(modeNames[:], ", "))
		}
		modes = append(modes, m)
	}
	return modes, nil
}

func fromEntry(e Entry) layoutEntry {
	le := layoutEntry{
		Text:          e.Text,
		Include:       modeStrings(e.Include),
		Exclude:       modeStrings(e.Exclude),
		Separator:     e.Separator,
		IgnoreMissing: e.IgnoreMissing,
	}
	for _, child := range e.Children {
		le.Children = append(le.Children, fromEntry(child))
	}
	return le
}

func modeStrings(modes []Mode) []string {
	if len(modes) == 0 {
		return nil
	}
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.String()
	}
	return out
}

// Validate reports layout smells that still render, such as an unterminated
// "{" or an entry no mode can ever show. Nothing returned here is an error:
// the evaluator has defined behavior for all of it.
func Validate(t Template) []string {
	var warnings []string
	t.Root.Walk("root", func(path string, e Entry) {
		if i := strings.LastIndex(e.Text, "{"); i >= 0 && !strings.Contains(e.Text[i:], "}") {
			warnings = append(warnings, fmt.Sprintf("%s: unterminated '{' is rendered literally", path))
		}
		if e.IgnoreMissing && len(Placeholders(e.Text)) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: ignore_missing has no effect without placeholders", path))
		}
		if neverVisible(e) {
			warnings = append(warnings, fmt.Sprintf("%s: hidden in every mode", path))
		}
		if e.Text == "" && len(e.Children) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: empty entry never renders", path))
		}
	})
	return warnings
}

func neverVisible(e Entry) bool {
	for _, m := range Modes() {
		if e.Visible(m) {
			return false
		}
	}
	return true
}

// Variables lists every placeholder name used in the template, in tree order.
func Variables(t Template) []string {
	var names []string
	seen := make(map[string]bool)
	t.Root.Walk("root", func(_ string, e Entry) {
		for _, name := range Placeholders(e.Text) {
			key := strings.ToUpper(name)
			if !seen[key] {
				seen[key] = true
				names = append(names, name)
			}
		}
	})
	return names
}
