package odata

import "strings"

// Interval is a parsed interval expression such as [a,b] or (a,b]. Square
// brackets are inclusive (ge/le), parentheses exclusive (gt/lt).
type Interval struct {
	Start   string
	End     string
	StartOp ComparisonOp
	EndOp   ComparisonOp
}

// ParseInterval parses interval syntax like [a,b], (a,b), [a,b) or (a,b].
// It returns false when the value is not an interval expression.
func ParseInterval(value string) (Interval, bool) {
	value = strings.TrimSpace(value)
	if len(value) < 3 {
		return Interval{}, false
	}

	startChar := value[0]
	endChar := value[len(value)-1]
	if (startChar != '[' && startChar != '(') || (endChar != ']' && endChar != ')') {
		return Interval{}, false
	}

	parts := strings.Split(value[1:len(value)-1], ",")
	if len(parts) != 2 {
		return Interval{}, false
	}

	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return Interval{}, false
	}

	iv := Interval{Start: start, End: end, StartOp: OpGt, EndOp: OpLt}
	if startChar == '[' {
		iv.StartOp = OpGe
	}
	if endChar == ']' {
		iv.EndOp = OpLe
	}
	return iv, true
}

var operatorSuffixes = []struct {
	suffix string
	op     ComparisonOp
}{
	{"Eq", OpEq},
	{"Lt", OpLt},
	{"Le", OpLe},
	{"Gt", OpGt},
	{"Ge", OpGe},
}

// SplitOperatorSuffix splits a term key like "cloudCoverLt" into its base
// attribute name and comparison operator. Keys without a recognised suffix
// default to equality.
func SplitOperatorSuffix(key string) (string, ComparisonOp) {
	for _, s := range operatorSuffixes {
		if strings.HasSuffix(key, s.suffix) {
			return strings.TrimSuffix(key, s.suffix), s.op
		}
	}
	return key, OpEq
}
