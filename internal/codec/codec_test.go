package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKeepsEntryOrder(t *testing.T) {
	records := []Record{
		{Entries: []Entry{{"Zed", LossScore}, {"Ann", WinScore}}},
		{Entries: []Entry{}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, records))

	out := buf.String()
	assert.Less(t, strings.Index(out, `"Zed"`), strings.Index(out, `"Ann"`))
	assert.Contains(t, out, `"Ann": 1.0`)
	assert.Contains(t, out, `"Zed": 0.0`)
	assert.Contains(t, out, `{}`)

	// Output is plain JSON readable by anything
	var generic []map[string]float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))
	assert.Equal(t, []map[string]float64{{"Zed": 0, "Ann": 1}, {}}, generic)
}

func TestEncodeEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestDecodeKeepsFileOrder(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{"C": 0.0, "A": 1.0, "B": 0.0}, {}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"C", "A", "B"}, records[0].Names())
	assert.Empty(t, records[1].Entries)
}

func TestDecodeRepeatedKeyKeepsFirstPositionLastValue(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{"A": 1.0, "B": 0.0, "A": 0.0}]`))
	require.NoError(t, err)

	assert.Equal(t, []Entry{{"A", 0.0}, {"B", 0.0}}, records[0].Entries)
}

func TestRoundTrip(t *testing.T) {
	records := []Record{
		{Entries: []Entry{{"Ann", WinScore}, {"Bo", LossScore}}},
		{Entries: []Entry{{"Bo \"the\" Great", LossScore}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, records))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"object at top level", `{"A": 1.0}`},
		{"truncated", `[{"A": 1.0}`},
		{"string score", `[{"A": "win"}]`},
		{"array element", `[["A"]]`},
		{"null element", `[null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)

			var le *LoadError
			assert.True(t, errors.As(err, &le), "expected *LoadError, got %T", err)
		})
	}
}

func TestDecodeNotArrayIsDetectable(t *testing.T) {
	_, err := Decode(strings.NewReader(`{}`))
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestDecodeRejectsEmptyName(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"": 1.0}]`))
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    string
		decided bool
	}{
		{"single winner", []Entry{{"A", 0}, {"B", 1}, {"C", 0}}, "B", true},
		{"no winner", []Entry{{"A", 0}, {"B", 0}}, "", false},
		{"empty", nil, "", false},
		{"tie goes to smallest name", []Entry{{"Zoe", 1}, {"Amy", 1}}, "Amy", true},
		{"higher score beats name", []Entry{{"Amy", 1}, {"Zoe", 2}}, "Zoe", true},
		{"negative is not a win", []Entry{{"A", -1}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := Record{Entries: tt.entries}.Winner()
			assert.Equal(t, tt.decided, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutputPath)
	records := []Record{{Entries: []Entry{{"Ann", WinScore}}}}

	require.NoError(t, WriteFile(path, records))

	decoded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultInputPath)

	_, err := ReadFile(path)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestReadFileMalformedCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := ReadFile(path)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
}
