package cmd

import (
	"bytes"
	"github.com/markusressel/smartfan/cmd/global"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// renderTable renders the given headers and rows the same way for all commands
func renderTable(headers []string, rows [][]string) (string, error) {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
