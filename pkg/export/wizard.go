package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// WizardChoices are the answers collected by the export wizard.
type WizardChoices struct {
	Dir     string
	Name    string
	Title   string
	Formats []Format
}

// Wizard asks where and how to export when no output flags were given.
type Wizard struct {
	choices WizardChoices
	out     io.Writer
}

// NewWizard returns a wizard prefilled with defaults.
func NewWizard(defaults WizardChoices) *Wizard {
	if defaults.Dir == "" {
		defaults.Dir = "."
	}
	if defaults.Name == "" {
		defaults.Name = "podgraph"
	}
	if len(defaults.Formats) == 0 {
		defaults.Formats = []Format{FormatSVG}
	}
	return &Wizard{choices: defaults, out: os.Stdout}
}

// IsTerminal reports whether stdin is connected to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !IsTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Run shows the form and returns the choices.
func (w *Wizard) Run() (WizardChoices, error) {
	fmt.Fprintln(w.out, "Export graph snapshot")
	fmt.Fprintln(w.out, "─────────────────────")

	c := w.choices
	options := make([]huh.Option[Format], 0, len(Formats()))
	for _, f := range Formats() {
		options = append(options, huh.NewOption(formatLabel(f), f).Selected(containsFormat(c.Formats, f)))
	}

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Value(&c.Dir).
				Validate(notBlank("directory")),
			huh.NewInput().
				Title("File name (without extension)").
				Value(&c.Name).
				Validate(notBlank("file name")),
			huh.NewInput().
				Title("Title shown in the picture header").
				Value(&c.Title).
				Placeholder("podgraph"),
			huh.NewMultiSelect[Format]().
				Title("Formats").
				Options(options...).
				Value(&c.Formats).
				Validate(func(fs []Format) error {
					if len(fs) == 0 {
						return errors.New("pick at least one format")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return WizardChoices{}, err
	}

	c.Dir = strings.TrimSpace(c.Dir)
	c.Name = strings.TrimSpace(c.Name)
	w.choices = c
	return c, nil
}

func formatLabel(f Format) string {
	switch f {
	case FormatSVG:
		return "SVG picture"
	case FormatPNG:
		return "PNG picture"
	case FormatSQLite:
		return "SQLite result set"
	default:
		return string(f)
	}
}

func containsFormat(fs []Format, f Format) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func notBlank(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
