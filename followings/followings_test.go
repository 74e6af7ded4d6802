package followings

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spudtrooper/bilifollow/api"
)

var testEntries = []Entry{
	{
		Mid:       1,
		Attribute: 2,
		Mtime:     1700000000,
		Uname:     "<alice>",
		Sign:      "你好 & goodbye",
		Face:      "https://i0.hdslb.com/bfs/face/a.jpg",
		OfficialVerify: api.OfficialVerify{
			Type: -1,
		},
	},
	{
		Mid:       22,
		Attribute: 6,
		Tag:       []int64{-10},
		Uname:     "bob",
		Vip: api.VipInfo{
			VipType:   2,
			VipStatus: 1,
		},
	},
}

func TestWriteRead(t *testing.T) {
	f := filepath.Join(t.TempDir(), "followings.json")
	if err := Write(f, testEntries); err != nil {
		t.Fatalf("Write: %v", err)
	}
	res, err := Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("unexpected skipped entries: %v", res.Skipped)
	}
	if got, want := withoutRaw(res.Entries), testEntries; !reflect.DeepEqual(want, got) {
		t.Errorf("Read: want != got: %+v %+v", want, got)
	}
	for i, e := range res.Entries {
		if len(e.Raw) == 0 {
			t.Errorf("entry %d: Raw not kept", i)
		}
	}
}

func withoutRaw(entries []Entry) []Entry {
	var res []Entry
	for _, e := range entries {
		e.Raw = nil
		res = append(res, e)
	}
	return res
}

func TestWriteIsStable(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")
	if err := Write(a, testEntries); err != nil {
		t.Fatalf("Write: %v", err)
	}
	res, err := Read(a)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := Write(b, res.Entries); err != nil {
		t.Fatalf("Write: %v", err)
	}
	ba, _ := os.ReadFile(a)
	bb, _ := os.ReadFile(b)
	if !bytes.Equal(ba, bb) {
		t.Errorf("rewriting changed the file:\n%s\n---\n%s", ba, bb)
	}
}

func TestMarshalFormat(t *testing.T) {
	b, err := Marshal(testEntries[:1])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{
		"[\n    {\n        \"mid\": 1,",
		`"uname": "<alice>"`,
		`"sign": "你好 & goodbye"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output does not contain %q:\n%s", want, s)
		}
	}
	if !strings.HasSuffix(s, "]\n") {
		t.Errorf("output should end with a newline: %q", s)
	}
}

func TestMarshalEmpty(t *testing.T) {
	b, err := Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(b), "[]\n"; got != want {
		t.Errorf("got %q but expected %q", got, want)
	}
}

func TestParseSkipsBadElements(t *testing.T) {
	input := `[
		{"mid": 5, "uname": "five"},
		"not an object",
		{"uname": "no mid"},
		{"mid": "77", "uname": "string mid"},
		{"mid": "abc"},
		{"mid": 1.5},
		{"mid": 0},
		{"mid": 8, "uname": 8},
		{"mid": 9}
	]`
	res, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var mids []int64
	for _, e := range res.Entries {
		mids = append(mids, e.Mid)
	}
	if got, want := mids, []int64{5, 77, 8, 9}; !reflect.DeepEqual(want, got) {
		t.Errorf("mids: want != got: %v %v", want, got)
	}
	if got, want := res.Entries[1].Uname, "string mid"; got != want {
		t.Errorf("uname: got %q but expected %q", got, want)
	}
	if got := res.Entries[2].Uname; got != "" {
		t.Errorf("metadata of a bad entry should be dropped, got uname %q", got)
	}
	var skipped []int
	for _, s := range res.Skipped {
		skipped = append(skipped, s.Index)
	}
	if got, want := skipped, []int{1, 2, 4, 5, 6}; !reflect.DeepEqual(want, got) {
		t.Errorf("skipped: want != got: %v %v", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "truncated", input: `[{"mid": 1}`},
		{name: "object", input: `{"mid": 1}`},
		{name: "number", input: `12`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Parse([]byte(test.input)); err == nil {
				t.Errorf("Parse(%q): expected an error", test.input)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseEmptyArray(t *testing.T) {
	res, err := Parse([]byte("[]"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Entries) != 0 || len(res.Skipped) != 0 {
		t.Errorf("expected nothing, got %+v", res)
	}
}

func TestParseWholeFloatMid(t *testing.T) {
	res, err := Parse([]byte(`[{"mid": 12.0, "uname": "twelve"}, {"mid": 1e3}, {"mid": 12.5}, {"mid": -3.0}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var mids []int64
	for _, e := range res.Entries {
		mids = append(mids, e.Mid)
	}
	if got, want := mids, []int64{12, 1000}; !reflect.DeepEqual(want, got) {
		t.Errorf("mids: want != got: %v %v", want, got)
	}
	if got, want := res.Entries[0].Uname, "twelve"; got != want {
		t.Errorf("uname: got %q but expected %q", got, want)
	}
	if got, want := len(res.Skipped), 2; got != want {
		t.Errorf("skipped: got %d but expected %d", got, want)
	}
}

func TestRewriteKeepsUnknownFields(t *testing.T) {
	input := `[
    {
        "mid": "77",
        "uname": "seventy-seven",
        "contract_info": {
            "is_contractor": false
        },
        "name_render": null,
        "rec_reason": ""
    }
]`
	res, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Marshal(res.Entries)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[
    {
        "mid": 77,
        "uname": "seventy-seven",
        "contract_info": {
            "is_contractor": false
        },
        "name_render": null,
        "rec_reason": ""
    }
]
`
	if got := string(b); got != want {
		t.Errorf("Marshal: want != got:\n%s\n---\n%s", want, got)
	}
}
