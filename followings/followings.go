// Package followings reads and writes the exported following list.
package followings

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/spudtrooper/bilifollow/api"
	"github.com/spudtrooper/bilifollow/log"
)

const DefaultFile = "followings.json"

// Entry is one followed account as the platform lists it.
type Entry = api.FollowingInfo

// Skipped is an element of the file that could not be turned into an Entry.
type Skipped struct {
	Index  int
	Reason string
}

type ReadResult struct {
	Entries []Entry
	Skipped []Skipped
}

// Marshal renders entries the way Write stores them.
func Marshal(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Write(path string, entries []Entry) error {
	b, err := Marshal(entries)
	if err != nil {
		return errors.Wrapf(err, "encoding %d followings", len(entries))
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func Read(path string) (ReadResult, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ReadResult{}, errors.Errorf("followings file %s does not exist; export it first", path)
	}
	if err != nil {
		return ReadResult{}, errors.Wrapf(err, "reading %s", path)
	}
	res, err := Parse(b)
	if err != nil {
		return ReadResult{}, errors.Wrapf(err, "parsing %s", path)
	}
	return res, nil
}

// Parse decodes a JSON array of entries. A malformed document is an error; a
// malformed element is skipped and recorded.
func Parse(b []byte) (ReadResult, error) {
	if !json.Valid(b) {
		return ReadResult{}, errors.Errorf("invalid JSON")
	}
	_, dataType, _, err := jsonparser.Get(b)
	if err != nil {
		return ReadResult{}, err
	}
	if dataType != jsonparser.Array {
		return ReadResult{}, errors.Errorf("expected a JSON array of followings, got %s", dataType)
	}

	var res ReadResult
	index := 0
	if _, err := jsonparser.ArrayEach(b, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		defer func() { index++ }()
		if err != nil {
			res.skip(index, err.Error())
			return
		}
		e, reason := parseEntry(value, dataType)
		if reason != "" {
			res.skip(index, reason)
			return
		}
		res.Entries = append(res.Entries, e)
	}); err != nil {
		return ReadResult{}, err
	}
	return res, nil
}

func (r *ReadResult) skip(index int, reason string) {
	log.Warnf("skipping followings[%d]: %s", index, reason)
	r.Skipped = append(r.Skipped, Skipped{Index: index, Reason: reason})
}

func parseEntry(value []byte, dataType jsonparser.ValueType) (Entry, string) {
	if dataType != jsonparser.Object {
		return Entry{}, "not an object: " + string(value)
	}
	midValue, midType, _, err := jsonparser.Get(value, "mid")
	if err == jsonparser.KeyPathNotFoundError {
		return Entry{}, "no mid: " + string(value)
	}
	if err != nil {
		return Entry{}, err.Error()
	}
	mid, err := parseMid(midValue, midType)
	if err != nil {
		return Entry{}, err.Error()
	}

	// Metadata is best-effort: the id alone is enough to follow.
	meta := value
	if midType != jsonparser.Number || string(midValue) != strconv.FormatInt(mid, 10) {
		meta = jsonparser.Delete(append([]byte{}, value...), "mid")
	}
	var e Entry
	if err := json.Unmarshal(meta, &e); err != nil {
		log.Warnf("ignoring metadata of %d: %v", mid, err)
		e = Entry{}
	}
	e.Mid = mid
	e.Raw = append(json.RawMessage{}, value...)
	return e, ""
}

// maxExactFloat is the largest integer a float64 holds exactly.
const maxExactFloat = 1 << 53

func parseMid(value []byte, dataType jsonparser.ValueType) (int64, error) {
	var mid int64
	switch dataType {
	case jsonparser.Number:
		v, err := jsonparser.ParseInt(value)
		if err != nil {
			// Whole floats such as 12.0 come from tools that rewrite the file.
			f, ferr := jsonparser.ParseFloat(value)
			if ferr != nil || f != math.Trunc(f) || f < 1 || f > maxExactFloat {
				return 0, errors.Errorf("invalid mid %s", string(value))
			}
			v = int64(f)
		}
		mid = v
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return 0, errors.Errorf("invalid mid %q", string(value))
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, errors.Errorf("invalid mid %q", s)
		}
		mid = v
	default:
		return 0, errors.Errorf("invalid mid %s", string(value))
	}
	if mid <= 0 {
		return 0, errors.Errorf("invalid mid %d", mid)
	}
	return mid, nil
}
