package cli

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func makeTestApp(ran *[]string) *app {
	a := makeApp()
	for _, name := range []string{"Follow", "Export", "Whoami", "FollowAll", "Help"} {
		name := name
		a.Register(name, "does "+name, func(context.Context) error {
			*ran = append(*ran, name)
			return nil
		})
	}
	return a
}

func TestAbbreviations(t *testing.T) {
	var ran []string
	a := makeTestApp(&ran)
	a.preRun()
	got := map[string]string{}
	for _, c := range a.cmds {
		got[c.name] = c.abbrev
	}
	want := map[string]string{
		"Export":    "e",
		"Follow":    "f",
		"FollowAll": "fa",
		"Help":      "h",
		"Whoami":    "w",
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("abbreviations: want != got: %v %v", want, got)
	}
}

func TestRunInOrder(t *testing.T) {
	var ran []string
	a := makeTestApp(&ran)
	if err := a.Init([]string{"Help"}, "export, W", []string{"fa", "FOLLOW"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := ran, []string{"Help", "Export", "Whoami", "FollowAll", "Follow"}; !reflect.DeepEqual(want, got) {
		t.Errorf("ran: want != got: %v %v", want, got)
	}
}

func TestInitRequiresAnAction(t *testing.T) {
	a := makeApp()
	if err := a.Init(nil, "", []string{" "}); err == nil {
		t.Errorf("expected an error")
	}
}

func TestRunUnknownAction(t *testing.T) {
	var ran []string
	a := makeTestApp(&ran)
	if err := a.Init(nil, "nope", nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := a.Run(context.Background()); err == nil {
		t.Errorf("expected an error")
	}
	if len(ran) != 0 {
		t.Errorf("nothing should have run: %v", ran)
	}
}

func TestRunStopsOnError(t *testing.T) {
	a := makeApp()
	var ran []string
	a.Register("Broken", "", func(context.Context) error { return errors.New("boom") })
	a.Register("Other", "", func(context.Context) error {
		ran = append(ran, "Other")
		return nil
	})
	if err := a.Init(nil, "broken,other", nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Broken") {
		t.Errorf("expected an error naming the action, got %v", err)
	}
	if len(ran) != 0 {
		t.Errorf("later actions should not run: %v", ran)
	}
}

func TestShowHelp(t *testing.T) {
	var ran []string
	a := makeTestApp(&ran)
	var buf bytes.Buffer
	a.ShowHelp(&buf)
	out := buf.String()
	for _, want := range []string{"Export", "FollowAll", "does Whoami", "Abbreviation"} {
		if !strings.Contains(out, want) {
			t.Errorf("help does not contain %q:\n%s", want, out)
		}
	}
}

func TestLeadingActions(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{args: nil, want: nil},
		{args: []string{"whoami", "--debug"}, want: []string{"whoami"}},
		{args: []string{"export", "follow", "-follow_pause=0", "help"}, want: []string{"export", "follow"}},
		{args: []string{"--actions=export"}, want: nil},
	}
	for _, test := range tests {
		if got := leadingActions(test.args); !reflect.DeepEqual(test.want, got) {
			t.Errorf("leadingActions(%v): want != got: %v %v", test.args, test.want, got)
		}
	}
}
