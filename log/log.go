package log

import "github.com/spudtrooper/goutil/colorlog"

const (
	prefix = "[bilifollow] "
)

func Printf(tmpl string, args ...interface{}) {
	colorlog.Printf(prefix+tmpl, args...)
}

func Println(s string) {
	colorlog.Println(prefix + s)
}

// Warnf is Printf with a marker so skipped entries stand out in long runs.
func Warnf(tmpl string, args ...interface{}) {
	colorlog.Printf(prefix+"WARNING: "+tmpl, args...)
}
