package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// outer-first, the reverse of completion order
var scenario = []Record{
	{Path: "total", Elapsed: 2 * time.Second},
	{Path: "total.second", Elapsed: 250 * time.Millisecond},
	{Path: "total.first", Elapsed: 1500 * time.Millisecond},
}

func TestWrite_TextOuterFirstAligned(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Precision = 3
	require.NoError(t, Write(&buf, scenario, Seconds, opts))

	want := "profiler:" + strings.Repeat(" ", 11) + "\"total\" 2.000 s\n" +
		"profiler:" + strings.Repeat(" ", 4) + "\"total.second\" 0.250 s\n" +
		"profiler:" + strings.Repeat(" ", 5) + "\"total.first\" 1.500 s\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("text report mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_TextUnits(t *testing.T) {
	records := []Record{{Path: "x", Elapsed: 1234567 * time.Nanosecond}}
	cases := []struct {
		unit Unit
		want string
	}{
		{Seconds, "profiler:    \"x\" 0.001235 s\n"},
		{Milliseconds, "profiler:    \"x\" 1.234567 ms\n"},
		{Nanoseconds, "profiler:    \"x\" 1234567.000000 ns\n"},
	}
	for _, tc := range cases {
		t.Run(tc.unit.String(), func(t *testing.T) {
			var buf bytes.Buffer
			opts := DefaultOptions()
			opts.Precision = 6
			require.NoError(t, Write(&buf, records, tc.unit, opts))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWrite_PreservesGivenOrder(t *testing.T) {
	records := []Record{
		{Path: "b", Elapsed: time.Second},
		{Path: "a", Elapsed: time.Second},
		{Path: "c", Elapsed: time.Second},
	}
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatNDJSON
	require.NoError(t, Write(&buf, records, Seconds, opts))

	var paths []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var wr wireRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &wr))
		paths = append(paths, wr.Path)
	}
	assert.Equal(t, []string{"b", "a", "c"}, paths)
}

func TestWrite_TextWideRunesAlign(t *testing.T) {
	records := []Record{
		{Path: "abcd", Elapsed: time.Second},
		{Path: "計算", Elapsed: time.Second},
	}
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Gutter = 1
	opts.Precision = 0
	require.NoError(t, Write(&buf, records, Seconds, opts))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "profiler: \"abcd\" 1 s", lines[0])
	assert.Equal(t, "profiler: \"計算\" 1 s", lines[1])
}

func TestWrite_TextCustomMarkerNoColorCodes(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Marker = "bench"
	opts.Gutter = 0
	require.NoError(t, Write(&buf, []Record{{Path: "a", Elapsed: 0}}, Milliseconds, opts))
	assert.Equal(t, "bench:\"a\" 0.000000000 ms\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestWrite_TextColor(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Color = true
	require.NoError(t, Write(&buf, []Record{{Path: "a", Elapsed: time.Second}}, Seconds, opts))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "\"a\"")
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatTable
	opts.Precision = 2
	require.NoError(t, Write(&buf, scenario, Milliseconds, opts))

	out := buf.String()
	assert.Contains(t, out, "2000.00")
	assert.Contains(t, out, "250.00")
	total := strings.Index(out, "total ")
	second := strings.Index(out, "total.second")
	first := strings.Index(out, "total.first")
	require.True(t, total >= 0 && second >= 0 && first >= 0, out)
	assert.Less(t, total, second)
	assert.Less(t, second, first)
}

func TestWrite_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatNDJSON
	require.NoError(t, Write(&buf, scenario, Milliseconds, opts))

	var got []wireRecord
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var wr wireRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &wr))
		got = append(got, wr)
	}
	want := []wireRecord{
		{Path: "total", Value: 2000, Unit: "ms", ElapsedNS: 2e9},
		{Path: "total.second", Value: 250, Unit: "ms", ElapsedNS: 250e6},
		{Path: "total.first", Value: 1500, Unit: "ms", ElapsedNS: 1500e6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ndjson mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Msgpack(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatMsgpack
	require.NoError(t, Write(&buf, scenario, Seconds, opts))

	dec := msgpack.NewDecoder(&buf)
	var paths []string
	for {
		var wr wireRecord
		err := dec.Decode(&wr)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, "s", wr.Unit)
		paths = append(paths, wr.Path)
	}
	assert.Equal(t, []string{"total", "total.second", "total.first"}, paths)
}

func TestWrite_NegativeElapsedRejectedOnWire(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatNDJSON
	err := Write(io.Discard, []Record{{Path: "bad", Elapsed: -1}}, Seconds, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestWrite_EmptyWritesNothing(t *testing.T) {
	for _, f := range []Format{FormatText, FormatNDJSON, FormatMsgpack} {
		var buf bytes.Buffer
		opts := DefaultOptions()
		opts.Format = f
		require.NoError(t, Write(&buf, nil, Seconds, opts))
		assert.Empty(t, buf.String(), f.String())
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{
		"s": Seconds, "seconds": Seconds, "MS": Milliseconds,
		"milliseconds": Milliseconds, "ns": Nanoseconds, " nsec ": Nanoseconds,
	} {
		got, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUnit("minutes")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatText, FormatTable, FormatNDJSON, FormatMsgpack} {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, got)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestUnitConvert(t *testing.T) {
	d := 3 * time.Millisecond
	assert.InDelta(t, 0.003, Seconds.Convert(d), 1e-12)
	assert.InDelta(t, 3.0, Milliseconds.Convert(d), 1e-12)
	assert.InDelta(t, 3e6, Nanoseconds.Convert(d), 1e-6)
	assert.InDelta(t, 0.003, Record{Elapsed: d}.Seconds(), 1e-12)
}
