package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/thomaso-mirodin/intmath/intgr"
)

type cmd struct {
	name   string
	abbrev string
	desc   string
	fn     func(context.Context) error
}

type app struct {
	cmds    []*cmd
	actions []string
}

func makeApp() *app {
	return &app{}
}

func (a *app) Register(name, desc string, fn func(context.Context) error) {
	c := &cmd{
		name: name,
		desc: desc,
		fn:   fn,
	}
	a.cmds = append(a.cmds, c)
}

// leadingActions returns the arguments before the first flag, so that
// `bilifollow whoami --debug` treats only "whoami" as an action.
func leadingActions(args []string) []string {
	var res []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			break
		}
		res = append(res, arg)
	}
	return res
}

// Init collects actions in command-line order: those before the flags, then
// the comma-delimited --actions value, then what follows the flags.
func (a *app) Init(leading []string, actions string, args []string) error {
	var actionList []string
	add := func(ss []string) {
		for _, c := range ss {
			if action := strings.TrimSpace(strings.ToLower(c)); action != "" {
				actionList = append(actionList, action)
			}
		}
	}
	add(leading)
	if actions != "" {
		add(strings.Split(actions, ","))
	}
	add(args)

	if len(actionList) == 0 {
		return errors.Errorf("you need to specify at least one action; try Help")
	}

	a.actions = actionList

	return nil
}

func (a *app) findCmd(s string) *cmd {
	for _, c := range a.cmds {
		if strings.EqualFold(s, c.name) {
			return c
		}
		if strings.EqualFold(s, c.abbrev) {
			return c
		}
	}
	return nil
}

func (a *app) ShowHelp(w io.Writer) {
	a.preRun()
	repeat := func(n int) string {
		return strings.Repeat("=", n)
	}
	var namePad int
	{
		maxNameLength := math.MinInt
		for _, c := range a.cmds {
			maxNameLength = intgr.Max(maxNameLength, len(c.name))
		}
		namePad = maxNameLength + 2
	}
	format := "  %" + fmt.Sprintf("%d", namePad) + "s - %-12s %s\n"

	fmt.Fprintln(w, "The following actions are available:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, format, "Action", "Abbreviation", "")
	fmt.Fprintf(w, format, repeat(namePad), repeat(len("Abbreviation")), "")
	for _, c := range a.cmds {
		fmt.Fprintf(w, format, c.name, c.abbrev, c.desc)
	}
}

func (a *app) preRun() {
	sort.Slice(a.cmds, func(i, j int) bool {
		return a.cmds[i].name < a.cmds[j].name
	})
	getAbbrev := func(name string) string {
		var buf bytes.Buffer
		for _, s := range name {
			s := string(s)
			if strings.ToUpper(s) == s {
				buf.WriteString(strings.ToLower(s))
			}
		}
		return buf.String()
	}
	isUnique := func(s string) bool {
		for _, c := range a.cmds {
			if c.abbrev == s {
				return false
			}
		}
		return true
	}
	for _, c := range a.cmds {
		c.abbrev = ""
	}
	for _, c := range a.cmds {
		abbrev := getAbbrev(c.name)
		if !isUnique(abbrev) {
			for i := 1; i <= len(c.name); i++ {
				sub := strings.ToLower(c.name[0:i])
				if isUnique(sub) {
					abbrev = sub
					break
				}
			}
		}
		if !isUnique(abbrev) {
			abbrev = strings.ToLower(c.name)
		}
		c.abbrev = abbrev
	}
}

func (a *app) Run(ctx context.Context) error {
	a.preRun()
	for _, s := range a.actions {
		c := a.findCmd(s)
		if c == nil {
			return errors.Errorf("no action for %q", s)
		}
		if err := c.fn(ctx); err != nil {
			return errors.Wrapf(err, "running %q", c.name)
		}
	}
	return nil
}
