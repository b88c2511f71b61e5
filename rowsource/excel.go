package rowsource

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/galite/vchart"
)

// ErrSheetNotExist is re-exported from excelize and indicates
// that a requested sheet name does not exist in the Excel file.
type ErrSheetNotExist = excelize.ErrSheetNotExist

// ReadExcel reads the rows of a sheet from an Excel file (.xlsx, .xlsm, .xltm, .xltx)
// and loads them with LoadStrings. An empty sheet name selects the first sheet.
// With rawCellStrings the cell values are used without Excel number formats.
func ReadExcel(reader io.Reader, sheet string, chart *vchart.Chart, header, rawCellStrings bool, parser *StringParser) (numRows int, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return 0, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return 0, ErrSheetNotExist{SheetName: "<FirstSheet>"}
		}
	}
	var opts []excelize.Options
	if rawCellStrings {
		opts = append(opts, excelize.Options{RawCellValue: true})
	}
	rows, err := f.GetRows(sheet, opts...)
	if err != nil {
		return 0, err
	}
	return LoadStrings(chart, rows, header, parser)
}
