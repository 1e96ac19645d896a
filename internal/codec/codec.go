// Package codec reads and writes the match history file: a JSON array with
// one object per match, mapping each participant's name to 1.0 if they won
// and 0.0 otherwise.
//
//	[{"Ann": 1.0, "Bo": 0.0}, {"Ann": 0.0, "Cy": 0.0}]
//
// Object keys keep their file order on both read and write.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
)

// Default file names used by the save and load entry points
const (
	DefaultInputPath  = "input.json"
	DefaultOutputPath = "output.json"
)

// Scores written for participants
const (
	WinScore  = 1.0
	LossScore = 0.0
)

// Entry is one participant of a match and their score
type Entry struct {
	Name  string
	Score float64
}

// Record is a single match as stored in the file
type Record struct {
	Entries []Entry
}

// Names returns participant names in record order
func (r Record) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Name
	}
	return names
}

// Winner returns the name with the highest positive score.
// Equal top scores go to the lexically smallest name. A record with no
// positive score has no winner.
func (r Record) Winner() (string, bool) {
	best := -1
	for i, e := range r.Entries {
		if e.Score <= LossScore {
			continue
		}
		if best < 0 ||
			e.Score > r.Entries[best].Score ||
			(e.Score == r.Entries[best].Score && e.Name < r.Entries[best].Name) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return r.Entries[best].Name, true
}

// set stores a score under name, overwriting in place when the name repeats
func (r *Record) set(name string, score float64) {
	i := slices.IndexFunc(r.Entries, func(e Entry) bool { return e.Name == name })
	if i >= 0 {
		r.Entries[i].Score = score
		return
	}
	r.Entries = append(r.Entries, Entry{Name: name, Score: score})
}

// MarshalJSON writes the record as an object, keys in entry order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		value, err := formatScore(e.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// formatScore keeps a trailing ".0" on whole numbers so scores read as floats
func formatScore(score float64) ([]byte, error) {
	if score == math.Trunc(score) && math.Abs(score) < 1e15 {
		return strconv.AppendFloat(nil, score, 'f', 1, 64), nil
	}
	return json.Marshal(score)
}

// UnmarshalJSON reads an object of name to score, keeping key order
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("match must be an object, got %v", tok)
	}

	r.Entries = []Entry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		if name == "" {
			return ErrEmptyName
		}

		var score float64
		if err := dec.Decode(&score); err != nil {
			return fmt.Errorf("score for %q: %w", name, err)
		}
		r.set(name, score)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// LoadError reports a history file that could not be read or parsed
type LoadError struct {
	Path string // empty when reading from a stream
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load match history: %v", e.Err)
	}
	return fmt.Sprintf("load match history from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Decoding errors, wrapped in *LoadError
var (
	ErrNotArray  = errors.New("match history must be a JSON array")
	ErrEmptyName = errors.New("participant name must not be empty")
)

// Encode writes records as an indented JSON array
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Decode reads a JSON array of records. Failures are returned as *LoadError.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &LoadError{Err: ErrNotArray}
	}

	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &LoadError{Err: err}
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// WriteFile encodes records to path, replacing any existing file
func WriteFile(path string, records []Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadFile decodes records from path
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	records, err := Decode(file)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return records, nil
}
