package vchart

// Localizer supplies the display texts of a chart.
//
// The source identifies the localization resource of the chart,
// idents identify entries within that resource.
type Localizer interface {
	// ChartLabel returns the title and help text of the chart.
	ChartLabel(source string) (title, help string, err error)

	// ColumnLabel returns the label and help text of a column.
	ColumnLabel(source, ident string) (label, help string, err error)

	// CodeNames returns the display names of a code table
	// in the same order as the passed code idents.
	CodeNames(source, ident string, codeIdents []string) ([]string, error)
}

// Column is the named, localizable base of Dimension and Measure.
type Column struct {
	Ident string
	Label string
	Help  string
}

// Title returns the Label or the Ident
// if the column has not been localized.
func (c *Column) Title() string {
	if c.Label == "" {
		return c.Ident
	}
	return c.Label
}

// Localize sets Label and Help from loc.
func (c *Column) Localize(loc Localizer, source string) error {
	label, help, err := loc.ColumnLabel(source, c.Ident)
	if err != nil {
		return err
	}
	c.Label = label
	c.Help = help
	return nil
}
