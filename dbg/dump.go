package dbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/linkroute/advanced"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Dump writes a deep, stable rendering of the values: map keys sorted and no
// pointer addresses, so two dumps of the same scene compare equal.
func Dump(w io.Writer, values ...interface{}) {
	dumpConfig.Fdump(w, values...)
}

// Describe is a one line summary of a routed link, coloured unless plain is
// set. Routes that fell back to ignoring obstacles are flagged.
func Describe(link *advanced.Link, route advanced.Route, plain bool) string {
	au := aurora.NewAurora(!plain)

	points := make([]string, len(route.Points))
	for i, p := range route.Points {
		points[i] = p.String()
	}

	status := au.Green("ok")
	if route.Fallbacks > 0 {
		status = au.Yellow(fmt.Sprintf("fallback x%d", route.Fallbacks))
	}
	return fmt.Sprintf("%s %s [%s] %s",
		au.Bold(LinkName(link)),
		status,
		strings.Join(points, " "),
		au.Faint(fmt.Sprintf("(%d expansions)", route.Expansions)),
	)
}
