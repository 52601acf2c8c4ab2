package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"gopkg.in/guregu/null.v3"
)

// Output - Column-oriented result of a snippet run, ready for table or
// JSON rendering
type Output struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// PrintTable writes the output as an aligned text table, one header line
// followed by the rows.
func (o Output) PrintTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	header := ""
	for idx, column := range o.Columns {
		if idx > 0 {
			header += "\t"
		}
		header += column
	}
	fmt.Fprintln(tw, header)

	for _, row := range o.Rows {
		line := ""
		for idx, value := range row {
			if idx > 0 {
				line += "\t"
			}
			line += value
		}
		fmt.Fprintln(tw, line)
	}

	fmt.Fprintf(tw, "(%d rows)\n", len(o.Rows))
	return tw.Flush()
}

func printJSON(w io.Writer, payload interface{}) error {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func nullStr(value null.String) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func nullIntStr(value null.Int) string {
	if !value.Valid {
		return ""
	}
	return strconv.FormatInt(value.Int64, 10)
}

func nullFloatStr(value null.Float) string {
	if !value.Valid {
		return ""
	}
	return strconv.FormatFloat(value.Float64, 'f', 2, 64)
}

func nullTimeStr(value null.Time) string {
	if !value.Valid {
		return ""
	}
	return value.Time.Format(time.RFC3339)
}

func nullBoolStr(value null.Bool) string {
	if !value.Valid {
		return ""
	}
	return strconv.FormatBool(value.Bool)
}
