package ctab

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/extrame/xls"

	"github.com/calcdelta/qpcr/foldchange"
)

// ParseXLS reads the first sheet of a legacy Excel workbook, row 0 being
// the header.
func ParseXLS(rs io.ReadSeeker, layout Layout) (foldchange.Dataset, error) {
	workbook, err := xls.OpenReader(rs, "utf-8")
	if err != nil {
		return foldchange.Dataset{}, pfx.Err(err)
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return foldchange.Dataset{}, pfx.Err(fmt.Errorf("Sheet 0 was nil"))
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			continue
		}

		cells := make([]string, 0, row.LastCol()+1)
		for colID := 0; colID <= row.LastCol(); colID++ {
			cells = append(cells, row.Col(colID))
		}
		rows = append(rows, cells)
	}

	return fromRows(rows, layout)
}
