package ctab

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/xuri/excelize/v2"

	"github.com/calcdelta/qpcr/foldchange"
)

// ParseXLSX reads the first sheet of a modern Excel workbook, row 0 being
// the header.
func ParseXLSX(r io.Reader, layout Layout) (foldchange.Dataset, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return foldchange.Dataset{}, pfx.Err(err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return foldchange.Dataset{}, pfx.Err(fmt.Errorf("The workbook has no sheets"))
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return foldchange.Dataset{}, pfx.Err(err)
	}

	return fromRows(rows, layout)
}
