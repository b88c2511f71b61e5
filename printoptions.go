package vchart

// Paper types of PrintOptions.
const (
	PaperA4 = iota
	PaperA3
	PaperLetter
	PaperLegal
)

// Paper layouts of PrintOptions.
const (
	LayoutPortrait  = "portrait"
	LayoutLandscape = "landscape"
)

// PrintOptions configure the export of a chart.
// They are passed unchanged to the ChartTypeFactory and the Display.
type PrintOptions struct {
	PaperType    int    `json:"paperType"    yaml:"paperType"`
	Layout       string `json:"layout"       yaml:"layout"`
	MarginTop    int    `json:"marginTop"    yaml:"marginTop"`
	MarginBottom int    `json:"marginBottom" yaml:"marginBottom"`
	MarginLeft   int    `json:"marginLeft"   yaml:"marginLeft"`
	MarginRight  int    `json:"marginRight"  yaml:"marginRight"`
	ImageWidth   int    `json:"imageWidth"   yaml:"imageWidth"`
	ImageHeight  int    `json:"imageHeight"  yaml:"imageHeight"`
}

// DefaultPrintOptions are used by charts without explicit print options.
var DefaultPrintOptions = PrintOptions{
	PaperType:    PaperA4,
	Layout:       LayoutLandscape,
	MarginTop:    5,
	MarginBottom: 5,
	MarginLeft:   5,
	MarginRight:  5,
	ImageWidth:   800,
	ImageHeight:  600,
}

// WithDefaults returns a copy of o with zero fields
// replaced by the values of DefaultPrintOptions.
// Zero margins are kept.
func (o PrintOptions) WithDefaults() PrintOptions {
	if o.Layout == "" {
		o.Layout = DefaultPrintOptions.Layout
	}
	if o.ImageWidth <= 0 {
		o.ImageWidth = DefaultPrintOptions.ImageWidth
	}
	if o.ImageHeight <= 0 {
		o.ImageHeight = DefaultPrintOptions.ImageHeight
	}
	return o
}
