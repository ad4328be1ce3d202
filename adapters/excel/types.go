package excel

// Sheet is one worksheet: a header row followed by data rows
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Workbook is an ordered list of sheets; the first one is active
type Workbook struct {
	Sheets []Sheet
}
