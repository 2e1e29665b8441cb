// Package report renders completed timing records.
//
// Writers emit records in the order given. Callers pass them outer-first so
// that an enclosing region precedes the regions nested inside it.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultMarker prefixes every text report line.
const DefaultMarker = "profiler"

// Record is one completed region.
type Record struct {
	Path    string
	Elapsed time.Duration
}

// Seconds returns the elapsed time as fractional seconds.
func (r Record) Seconds() float64 { return r.Elapsed.Seconds() }

// Options controls report layout.
type Options struct {
	Format    Format
	Marker    string
	Gutter    int  // spaces between the widest path and the marker column
	Precision int  // digits after the decimal point
	Color     bool // colorize marker and values in text output
}

// DefaultOptions returns the layout used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Format:    FormatText,
		Marker:    DefaultMarker,
		Gutter:    4,
		Precision: 9,
	}
}

// Write renders records to w in the order given.
func Write(w io.Writer, records []Record, unit Unit, opts Options) error {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if opts.Gutter < 0 {
		opts.Gutter = 0
	}
	switch opts.Format {
	case FormatTable:
		return writeTable(w, records, unit, opts)
	case FormatNDJSON:
		return writeNDJSON(w, records, unit)
	case FormatMsgpack:
		return writeMsgpack(w, records, unit)
	default:
		return writeText(w, records, unit, opts)
	}
}

func formatValue(d time.Duration, unit Unit, precision int) string {
	return strconv.FormatFloat(unit.Convert(d), 'f', precision, 64)
}

func writeText(w io.Writer, records []Record, unit Unit, opts Options) error {
	widths := make([]int, len(records))
	maxWidth := 0
	for i, r := range records {
		widths[i] = runewidth.StringWidth(r.Path)
		maxWidth = max(maxWidth, widths[i])
	}

	markerColor := color.New(color.FgCyan, color.Bold)
	valueColor := color.New(color.FgYellow)
	if opts.Color {
		markerColor.EnableColor()
		valueColor.EnableColor()
	} else {
		markerColor.DisableColor()
		valueColor.DisableColor()
	}
	marker := markerColor.Sprint(opts.Marker)

	bw := bufio.NewWriter(w)
	for i, r := range records {
		pad := strings.Repeat(" ", maxWidth-widths[i]+opts.Gutter)
		value := valueColor.Sprint(formatValue(r.Elapsed, unit, opts.Precision))
		if _, err := fmt.Fprintf(bw, "%s:%s\"%s\" %s %s\n", marker, pad, r.Path, value, unit.Symbol()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeTable(w io.Writer, records []Record, unit Unit, opts Options) error {
	table := tablewriter.NewWriter(w)
	table.Header("Region", fmt.Sprintf("Elapsed (%s)", unit.Symbol()))
	for _, r := range records {
		if err := table.Append(r.Path, formatValue(r.Elapsed, unit, opts.Precision)); err != nil {
			return fmt.Errorf("table row %q: %w", r.Path, err)
		}
	}
	return table.Render()
}

type wireRecord struct {
	Path      string  `json:"path" msgpack:"path"`
	Value     float64 `json:"value" msgpack:"value"`
	Unit      string  `json:"unit" msgpack:"unit"`
	ElapsedNS uint64  `json:"elapsed_ns" msgpack:"elapsed_ns"`
}

func toWire(r Record, unit Unit) (wireRecord, error) {
	ns, err := safecast.Conv[uint64](int64(r.Elapsed))
	if err != nil {
		return wireRecord{}, fmt.Errorf("record %q: %w", r.Path, err)
	}
	return wireRecord{
		Path:      r.Path,
		Value:     unit.Convert(r.Elapsed),
		Unit:      unit.Symbol(),
		ElapsedNS: ns,
	}, nil
}

func writeNDJSON(w io.Writer, records []Record, unit Unit) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		wr, err := toWire(r, unit)
		if err != nil {
			return err
		}
		if err := enc.Encode(wr); err != nil {
			return err
		}
	}
	return nil
}

func writeMsgpack(w io.Writer, records []Record, unit Unit) error {
	enc := msgpack.NewEncoder(w)
	for _, r := range records {
		wr, err := toWire(r, unit)
		if err != nil {
			return err
		}
		if err := enc.Encode(&wr); err != nil {
			return err
		}
	}
	return nil
}
