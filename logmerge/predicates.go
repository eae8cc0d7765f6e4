package logmerge

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/logmerge/errors"
	"github.com/kbukum/logmerge/pipeline"
	"github.com/kbukum/logmerge/record"
)

// Record is a numbered log line.
type Record = record.Line[string]

// Filter reports whether a record is kept.
type Filter func(Record) bool

// Order reports whether a must be emitted before b. Records that are not
// ordered either way are emitted right side first.
type Order = pipeline.Before[Record]

// AcceptAll keeps every record.
func AcceptAll(Record) bool { return true }

// EvenPositions keeps records at positions 2, 4, 6, ...
func EvenPositions(r Record) bool { return r.Position()%2 == 0 }

// OddPositions keeps records at positions 1, 3, 5, ...
func OddPositions(r Record) bool { return r.Position()%2 != 0 }

// Contains keeps records whose content contains sub.
func Contains(sub string) Filter {
	return func(r Record) bool { return strings.Contains(r.Content(), sub) }
}

// Matching keeps records whose content matches re.
func Matching(re *regexp.Regexp) Filter {
	return func(r Record) bool { return re.MatchString(r.Content()) }
}

// ByContent orders records by byte-wise content comparison.
func ByContent(a, b Record) bool { return a.Content() < b.Content() }

// ByFirstChar orders records by the code point of the first character of
// their content. Empty content sorts before everything else.
func ByFirstChar(a, b Record) bool { return firstRune(a.Content()) < firstRune(b.Content()) }

// ByPosition orders records by their position in their own source.
func ByPosition(a, b Record) bool { return a.Position() < b.Position() }

func firstRune(s string) rune {
	if s == "" {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// Filter names accepted by ParseFilter. Parameterized filters take their
// argument after a colon: "contains:ERROR", "match:^\d{4}-".
const (
	FilterAll      = "all"
	FilterEven     = "even"
	FilterOdd      = "odd"
	FilterContains = "contains"
	FilterMatch    = "match"
)

// Order names accepted by ParseOrder.
const (
	OrderLexical   = "lexical"
	OrderFirstChar = "first-char"
	OrderPosition  = "position"
)

var namedFilters = map[string]Filter{
	FilterAll:  AcceptAll,
	FilterEven: EvenPositions,
	FilterOdd:  OddPositions,
}

var namedOrders = map[string]Order{
	OrderLexical:   ByContent,
	OrderFirstChar: ByFirstChar,
	OrderPosition:  ByPosition,
}

// ParseFilter resolves a filter expression. An empty expression keeps
// everything.
func ParseFilter(expr string) (Filter, error) {
	if expr == "" {
		return AcceptAll, nil
	}
	name, arg, hasArg := strings.Cut(expr, ":")
	switch name {
	case FilterContains:
		if !hasArg || arg == "" {
			return nil, errors.InvalidInput("filter", "contains needs a substring, e.g. contains:ERROR")
		}
		return Contains(arg), nil
	case FilterMatch:
		if !hasArg || arg == "" {
			return nil, errors.InvalidInput("filter", "match needs a pattern, e.g. match:^WARN")
		}
		re, err := regexp.Compile(arg)
		if err != nil {
			return nil, errors.InvalidInput("filter", "bad pattern "+arg).WithCause(err)
		}
		return Matching(re), nil
	}
	if f, ok := namedFilters[expr]; ok {
		return f, nil
	}
	return nil, errors.InvalidInput("filter", "unknown filter "+expr+", want one of: "+strings.Join(FilterNames(), ", "))
}

// ParseOrder resolves an ordering name. An empty name is lexical.
func ParseOrder(name string) (Order, error) {
	if name == "" {
		return ByContent, nil
	}
	if o, ok := namedOrders[name]; ok {
		return o, nil
	}
	return nil, errors.InvalidInput("order", "unknown order "+name+", want one of: "+strings.Join(OrderNames(), ", "))
}

// FilterNames lists the accepted filter forms, sorted.
func FilterNames() []string {
	names := []string{FilterContains + ":<text>", FilterMatch + ":<regexp>"}
	for n := range namedFilters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// OrderNames lists the accepted ordering names, sorted.
func OrderNames() []string {
	names := make([]string, 0, len(namedOrders))
	for n := range namedOrders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
