// Package main provides the galite-chart CLI that builds a chart
// from a YAML definition and a CSV or Excel data file.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"

	"github.com/galite/vchart"
	"github.com/galite/vchart/chartdef"
	"github.com/galite/vchart/export"
	"github.com/galite/vchart/localization"
	"github.com/galite/vchart/render"
	"github.com/galite/vchart/rowsource"
)

var (
	defPath     string
	dataPath    string
	catalogPath string
	chartType   string
	outputPath  string
	sheet       string
	comma       string
	encoding    string
	noHeader    bool
	pretty      bool
	format      string
	verbose     bool

	// csvData is the format of the loaded CSV data file
	csvData *rowsource.CSVFormat
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "galite-chart",
		Short: "Build charts from chart definitions and data files",
		Long: `galite-chart builds a chart declared in a YAML definition file
with the rows of a CSV or Excel file and prints its data series
or renders it as PNG or SVG image.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&defPath, "def", "", "Chart definition YAML file (required)")
	flags.StringVar(&dataPath, "data", "", "CSV or Excel data file (required)")
	flags.StringVar(&catalogPath, "catalog", "", "Localization catalog YAML file")
	flags.StringVar(&chartType, "type", "", "Chart type: bar, column, line, area, pie")
	flags.StringVar(&sheet, "sheet", "", "Excel sheet name (default: first sheet)")
	flags.StringVar(&comma, "comma", "", "CSV field delimiter (default: detected)")
	flags.StringVar(&encoding, "encoding", "", "CSV character encoding (default: detected)")
	flags.BoolVar(&noHeader, "no-header", false, "Data file has no header row")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")
	_ = rootCmd.MarkPersistentFlagRequired("def")
	_ = rootCmd.MarkPersistentFlagRequired("data")

	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Print the data series of the chart as JSON",
		Args:  cobra.NoArgs,
		RunE:  runSeries,
	}
	seriesCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	seriesCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	seriesCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, csv, html")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart as PNG or SVG image",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .png or .svg file (required)")
	_ = renderCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(seriesCmd, renderCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeries(cmd *cobra.Command, args []string) error {
	chart, catalog, err := buildChart(vchart.Config{TypeFactory: render.Factory{}})
	if err != nil {
		return err
	}
	defer chart.Destroy()

	data, err := encodeSeries(cmd.Context(), chart, catalog)
	if err != nil {
		return err
	}
	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return fs.File(outputPath).WriteAll(data)
}

func encodeSeries(ctx context.Context, chart *vchart.Chart, catalog *localization.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "json":
		type output struct {
			Ident  string              `json:"ident"`
			Title  string              `json:"title"`
			Type   string              `json:"type"`
			Series []vchart.DataSeries `json:"series"`
		}
		t, _ := chart.Type()
		result := output{
			Ident:  chart.Ident,
			Title:  chart.Title,
			Type:   catalog.TypeName(t),
			Series: chart.Series(),
		}
		enc := json.NewEncoder(&buf)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(result); err != nil {
			return nil, fmt.Errorf("can't encode series: %w", err)
		}
	case "csv":
		writer := export.NewCSVWriter()
		if encoding != "" {
			encoder, err := export.CharsetEncoder(encoding)
			if err != nil {
				return nil, err
			}
			writer = writer.WithEncoder(encoder)
		}
		if csvData != nil {
			writer = writer.WithDelimiter(rune(csvData.Separator[0]))
		}
		if err := writer.Write(ctx, &buf, chart); err != nil {
			return nil, err
		}
	case "html":
		if err := export.NewHTMLWriter().Write(ctx, &buf, chart); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return buf.Bytes(), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	output := fs.File(outputPath)
	imageFormat, err := render.FormatOfFile(output.Name())
	if err != nil {
		return err
	}
	display := &render.Display{Output: output, Format: imageFormat}
	chart, _, err := buildChart(vchart.Config{TypeFactory: render.Factory{}, Display: display})
	if err != nil {
		return err
	}
	defer chart.Destroy()

	t, _ := chart.Type()
	if err = chart.SetType(t, true); err != nil {
		return err
	}
	if err = display.Err(); err != nil {
		return err
	}
	slog.Info("Rendered chart", slog.String("chart", chart.Ident), slog.String("file", string(output)))
	return nil
}

// buildChart creates the chart of the definition file,
// loads the data file and builds the chart.
// The returned catalog is never nil.
func buildChart(config vchart.Config) (*vchart.Chart, *localization.Catalog, error) {
	def, err := chartdef.Load(fs.File(defPath))
	if err != nil {
		return nil, nil, err
	}
	catalog := &localization.Catalog{}
	if catalogPath != "" {
		catalog, err = localization.Load(fs.File(catalogPath))
		if err != nil {
			return nil, nil, err
		}
		catalog.ApplyBooleanLabels()
	}

	chart, err := def.NewChart(config)
	if err != nil {
		return nil, nil, err
	}
	if catalogPath != "" {
		if err = chart.Localize(catalog); err != nil {
			return nil, nil, err
		}
	}
	var selected vchart.ChartType
	if chartType != "" {
		selected, err = vchart.ParseChartType(chartType)
		if err != nil {
			return nil, nil, err
		}
	}

	if err = loadData(chart, fs.File(dataPath)); err != nil {
		return nil, nil, err
	}
	status, err := chart.Build()
	if err != nil {
		return nil, nil, err
	}
	if status != vchart.BuildOK {
		return nil, nil, errors.New(catalog.ErrorMessage(status.Err()))
	}
	if selected != 0 {
		// No-op for a type fixed by the definition
		if err = chart.SetType(selected, false); err != nil {
			return nil, nil, err
		}
	}
	return chart, catalog, nil
}

func loadData(chart *vchart.Chart, file fs.File) error {
	reader, err := file.OpenReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	csvData = nil
	var numRows int
	switch ext := strings.ToLower(file.Ext()); ext {
	case ".csv", ".txt":
		var csvFormat *rowsource.CSVFormat
		if comma != "" || encoding != "" {
			csvFormat = rowsource.NewCSVFormat(",")
			if comma != "" {
				csvFormat.Separator = comma
			}
			if encoding != "" {
				csvFormat.Encoding = encoding
			}
		}
		numRows, csvData, err = rowsource.ReadCSV(reader, chart, csvFormat, !noHeader, nil)
		if csvData != nil {
			slog.Debug("CSV format", slog.String("encoding", csvData.Encoding), slog.String("separator", csvData.Separator))
		}
	case ".xlsx", ".xlsm", ".xltm", ".xltx":
		numRows, err = rowsource.ReadExcel(reader, sheet, chart, !noHeader, false, nil)
	default:
		return fmt.Errorf("unsupported data file type %q", ext)
	}
	if err != nil {
		return fmt.Errorf("can't load %s: %w", file.Name(), err)
	}
	slog.Debug("Loaded rows", slog.String("chart", chart.Ident), slog.Int("rows", numRows))
	return nil
}
