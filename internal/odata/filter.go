package odata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// dateFilterSpec binds a search term base name to the OData date field it
// filters on.
type dateFilterSpec struct {
	field        string
	op           ComparisonOp
	title        string
	intervalOnly bool
}

var dateFieldSpecs = []struct {
	base  string
	field string
	desc  string
}{
	{"contentDateStart", "ContentDate/Start", "Acquisition start date"},
	{"contentDateEnd", "ContentDate/End", "Acquisition end date"},
	{"publicationDate", "PublicationDate", "Publication date"},
}

var operatorLabels = map[ComparisonOp]string{
	OpEq: "equals",
	OpLt: "less than",
	OpLe: "less than or equal",
	OpGt: "greater than",
	OpGe: "greater than or equal",
}

// dateFilters maps search term keys (base name plus optional operator suffix)
// to their filter specs. The bare base name only accepts interval syntax.
var dateFilters = buildDateFilters()

func buildDateFilters() map[string]dateFilterSpec {
	m := make(map[string]dateFilterSpec)
	for _, f := range dateFieldSpecs {
		m[f.base] = dateFilterSpec{field: f.field, op: OpEq, intervalOnly: true,
			title: fmt.Sprintf("%s %s (%s %s)", f.desc, operatorLabels[OpEq], f.field, OpEq)}
		for _, s := range operatorSuffixes {
			m[f.base+s.suffix] = dateFilterSpec{field: f.field, op: s.op,
				title: fmt.Sprintf("%s %s (%s %s)", f.desc, operatorLabels[s.op], f.field, s.op)}
		}
	}
	return m
}

// builtinParams are search terms that exist for every collection.
var builtinParams = map[string]TermInfo{
	"name": {
		Title:   "Filter by product name (substring match)",
		Example: "S2A_MSIL2A_20240110",
	},
	"geometry": {
		Title:   "WKT geometry for spatial filtering",
		Example: "POLYGON((lon1 lat1, lon2 lat2, ...))",
	},
}

// internalParams are handled by the query layer, never by the filter.
var internalParams = map[string]bool{"top": true, "skip": true}

// deprecatedParams maps removed search term names to migration hints.
var deprecatedParams = map[string]string{
	"box": "The 'box' parameter was only supported in the old OpenSearch API, " +
		"use the 'geometry' parameter with a polygon in WKT format instead. " +
		"Example: geometry='POLYGON((west south, west north, " +
		"east north, east south, west south))'.",
	"startDate":      "The 'startDate' parameter has been renamed. Use 'contentDateStartGt' instead.",
	"completionDate": "The 'completionDate' parameter has been renamed. Use 'contentDateEndLt' instead.",
	"publishedAfter": "The 'publishedAfter' parameter has been renamed. Use 'publicationDateGt' instead.",
	"publishedBefore": "The 'publishedBefore' parameter has been renamed. " +
		"Use 'publicationDateLt' instead.",
	"maxRecords": "The 'maxRecords' parameter has been renamed. Use 'top' instead.",
}

// TermInfo describes a search term for discovery output.
type TermInfo struct {
	Title   string
	Type    string
	Example string
}

// BuildFilter produces the $filter expression for a collection and set of
// search terms. The collection clause always comes first; the remaining
// clauses follow in lexical key order so generated URLs are stable.
func BuildFilter(collection string, terms SearchTerms) (string, error) {
	filters := []string{fmt.Sprintf("Collection/Name eq '%s'", collection)}

	keys := make([]string, 0, len(terms))
	for key := range terms {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if internalParams[key] {
			continue
		}
		if hint, ok := deprecatedParams[key]; ok {
			return "", fmt.Errorf("%s", hint)
		}

		strValue := formatTermValue(terms[key])

		if spec, ok := dateFilters[key]; ok {
			clauses, err := buildDateClauses(key, strValue, spec)
			if err != nil {
				return "", err
			}
			filters = append(filters, clauses...)
			continue
		}

		switch key {
		case "name", "nameEq":
			filters = append(filters, fmt.Sprintf("contains(Name,'%s')", strValue))
		case "geometry", "geometryEq":
			filters = append(filters, fmt.Sprintf("OData.CSC.Intersects(area=geography'SRID=4326;%s')", strValue))
		default:
			clauses, err := buildAttributeClauses(key, strValue)
			if err != nil {
				return "", err
			}
			filters = append(filters, clauses...)
		}
	}

	return strings.Join(filters, " and "), nil
}

func buildDateClauses(key, value string, spec dateFilterSpec) ([]string, error) {
	iv, isInterval := ParseInterval(value)
	if spec.intervalOnly {
		if !isInterval {
			return nil, fmt.Errorf("'%s' requires interval syntax, e.g. %s=[a,b]. For an exact match, use '%sEq' instead", key, key, key)
		}
		return []string{
			fmt.Sprintf("%s %s %s", spec.field, iv.StartOp, iv.Start),
			fmt.Sprintf("%s %s %s", spec.field, iv.EndOp, iv.End),
		}, nil
	}
	if isInterval {
		return nil, fmt.Errorf("interval syntax is not allowed on '%s'. Use the base name for intervals instead", key)
	}
	return []string{fmt.Sprintf("%s %s %s", spec.field, spec.op, value)}, nil
}

// buildAttributeClauses builds the filter clause(s) for a generic product
// attribute term, resolving operator suffixes and interval syntax.
func buildAttributeClauses(key, value string) ([]string, error) {
	base, op := SplitOperatorSuffix(key)

	info, ok := Attributes[base]
	if !ok {
		return nil, fmt.Errorf("the '%s' parameter is not supported", key)
	}

	// String and Boolean attributes only support equality
	if (info.Type == TypeString || info.Type == TypeBoolean) && op != OpEq {
		return nil, fmt.Errorf("comparison operators are not supported on %s attribute '%s'", strings.ToLower(string(info.Type)), base)
	}

	if info.Type == TypeInteger || info.Type == TypeDouble || info.Type == TypeDateTimeOffset {
		hasSuffix := key != base
		iv, isInterval := ParseInterval(value)

		if !hasSuffix {
			if !isInterval {
				return nil, fmt.Errorf("'%s' requires interval syntax, e.g. %s=[a,b]. For an exact match, use '%sEq' instead", key, key, key)
			}
			start, err := attributeClause(base, iv.Start, info.Type, iv.StartOp)
			if err != nil {
				return nil, err
			}
			end, err := attributeClause(base, iv.End, info.Type, iv.EndOp)
			if err != nil {
				return nil, err
			}
			return []string{start, end}, nil
		}
		if isInterval {
			return nil, fmt.Errorf("interval syntax is not allowed on '%s'. Use '%s' for intervals instead", key, base)
		}
	}

	clause, err := attributeClause(base, value, info.Type, op)
	if err != nil {
		return nil, err
	}
	return []string{clause}, nil
}

// attributeClause renders a single Attributes/any() lambda clause.
func attributeClause(name, value string, attrType AttributeType, op ComparisonOp) (string, error) {
	valueStr, err := odataValue(value, attrType, name)
	if err != nil {
		return "", err
	}
	entity := "OData.CSC." + attrType.ODataName()
	return fmt.Sprintf("Attributes/%s/any(att:att/Name eq '%s' and att/%s/Value %s %s)",
		entity, name, entity, op, valueStr), nil
}

// odataValue converts a raw string value to its OData literal representation
// for the given attribute type.
func odataValue(value string, attrType AttributeType, attrName string) (string, error) {
	switch attrType {
	case TypeString:
		return "'" + value + "'", nil
	case TypeDouble:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("invalid numeric value '%s' for attribute '%s'", value, attrName)
		}
		s := strconv.FormatFloat(f, 'f', -1, 64)
		// Whole numbers keep a trailing .0 so the literal stays a Double.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case TypeInteger:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer value '%s' for attribute '%s'", value, attrName)
		}
		return strconv.FormatInt(i, 10), nil
	case TypeBoolean:
		lower := strings.ToLower(value)
		if lower != "true" && lower != "false" {
			return "", fmt.Errorf("invalid boolean value '%s' for attribute '%s': use 'true' or 'false'", value, attrName)
		}
		return lower, nil
	default:
		return value, nil
	}
}

// DescribeSearchTerms returns the builtin search terms (date filters with
// operator suffixes, name, geometry) that are available for every collection.
func DescribeSearchTerms() map[string]TermInfo {
	terms := make(map[string]TermInfo)
	for key, spec := range dateFilters {
		if spec.intervalOnly {
			continue
		}
		terms[key] = TermInfo{Title: spec.title, Example: "2024-01-01 or 2024-01-01T00:00:00Z"}
	}
	for key, info := range builtinParams {
		terms[key] = info
	}
	return terms
}

// BaseSearchTerms returns the builtin terms keyed by base name only, without
// the Lt/Le/Gt/Ge variants. Used when describing a collection.
func BaseSearchTerms() map[string]TermInfo {
	terms := make(map[string]TermInfo)
	for _, f := range dateFieldSpecs {
		terms[f.base] = TermInfo{Title: f.desc, Example: "2024-01-01 or 2024-01-01T00:00:00Z"}
	}
	for key, info := range builtinParams {
		terms[key] = info
	}
	return terms
}
