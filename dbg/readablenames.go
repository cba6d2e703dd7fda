package dbg

import (
	"fmt"
	"reflect"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/osuushi/linkroute/advanced"
)

// This converts arbitrary values into random readable names. It flagrantly
// leaks memory but generates the names lazily, so it's not a problem unless
// you're actually using it. This is helpful for telling apart links and
// elements that were built in code without an ID.

var memo map[interface{}]string

func init() {
	memo = make(map[interface{}]string)
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	switch v := reflect.ValueOf(obj); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return "Ø"
		}
	}
	if !reflect.TypeOf(obj).Comparable() {
		return "Uncomparable"
	}

	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", title(petname.Adjective()), title(petname.Name()))
	memo[obj] = r
	return r
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LinkName is the link's ID, or a readable name when it has none.
func LinkName(link *advanced.Link) string {
	if link != nil && link.ID != "" {
		return link.ID
	}
	return Name(link)
}

// ElementName is the element's ID, or a readable name when it has none.
func ElementName(element *advanced.Element) string {
	if element != nil && element.ID != "" {
		return element.ID
	}
	return Name(element)
}
