// Package intent is the deterministic, dependency-free fallback for resolving
// a query into a call plan. It is an ordered table of keyword rules evaluated
// top to bottom; the first matching rule wins and produces exactly one tool
// call. The dispatcher always executes the plan produced here, whatever the
// model says.
package intent

import (
	"errors"
	"regexp"
	"strings"

	"github.com/harits/aksi/pkg/plan"
)

// ErrNoIntent is returned when no rule matches the query. Soft failure: the
// caller reports it to the user, nothing aborts.
var ErrNoIntent = errors.New("unrecognized request: no intent rule matched")

// Documented extraction defaults. These are deliberate, fixed values used
// when the heuristics cannot pull an argument out of the query text.
const (
	DefaultLocation  = "London"
	DefaultWriteFile = "report.txt"
	DefaultReadFile  = "sample.txt"
	DefaultContent   = "Sample content generated by fallback mode."
	DefaultQuarter   = "Q4"
)

// Rule pairs a predicate with a tool-call builder. Both receive the raw
// query; predicates must be case-insensitive.
type Rule struct {
	Name  string
	Match func(query string) bool
	Build func(query string) plan.ToolCall
}

// Rules returns the rule table in evaluation order. The sales-report rule
// sits ahead of the file-write rule so that "generate a sales report" hits
// the report tool rather than tripping on the "generate" write keyword.
func Rules() []Rule {
	return []Rule{
		{
			Name:  "weather",
			Match: anyKeyword("weather", "temperature", "climate"),
			Build: func(query string) plan.ToolCall {
				return plan.ToolCall{
					Name:      "get_weather",
					Arguments: map[string]interface{}{"location": extractLocation(query)},
				}
			},
		},
		{
			Name:  "sales_report",
			Match: anyKeyword("sales report", "quarterly sales", "sales data"),
			Build: func(query string) plan.ToolCall {
				return plan.ToolCall{
					Name:      "generate_sales_report",
					Arguments: map[string]interface{}{"quarter": extractQuarter(query)},
				}
			},
		},
		{
			Name: "read_file",
			Match: func(query string) bool {
				return anyKeyword("read", "open", "show")(query) &&
					anyKeyword("file", ".txt")(query)
			},
			Build: func(query string) plan.ToolCall {
				return plan.ToolCall{
					Name:      "read_file",
					Arguments: map[string]interface{}{"filename": extractFilename(query, DefaultReadFile)},
				}
			},
		},
		{
			Name:  "write_file",
			Match: anyKeyword("write", "create", "save", "generate"),
			Build: func(query string) plan.ToolCall {
				return plan.ToolCall{
					Name: "write_file",
					Arguments: map[string]interface{}{
						"filename": extractFilename(query, DefaultWriteFile),
						"content":  extractContent(query),
					},
				}
			},
		},
		{
			Name: "search",
			Match: func(query string) bool {
				return anyKeyword("search", "find", "look")(query) &&
					anyKeyword("news", "information", "about")(query)
			},
			Build: func(query string) plan.ToolCall {
				return plan.ToolCall{
					Name:      "search_internet",
					Arguments: map[string]interface{}{"query": extractSearchQuery(query)},
				}
			},
		},
	}
}

// Match resolves a query against the rule table. On no match it returns an
// empty plan and ErrNoIntent.
func Match(query string) (plan.CallPlan, error) {
	for _, rule := range Rules() {
		if rule.Match(query) {
			return plan.CallPlan{rule.Build(query)}, nil
		}
	}
	return plan.CallPlan{}, ErrNoIntent
}

func anyKeyword(keywords ...string) func(string) bool {
	return func(query string) bool {
		lower := strings.ToLower(query)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

var (
	inWordRe    = regexp.MustCompile(`(?i)\bin\b`)
	quarterRe   = regexp.MustCompile(`(?i)\bq([1-4])\b`)
	filenameRe  = regexp.MustCompile(`(?i)[\w.-]+\.(txt|md|csv|json|log)\b`)
	withWordRe  = regexp.MustCompile(`(?i)\bwith\b`)
	trimCutset  = " \t?.!,:;\"'"
	searchForRe = regexp.MustCompile(`(?i)\bsearch for\b`)
	findRe      = regexp.MustCompile(`(?i)\bfind\b`)
)

// extractLocation takes the text following the last standalone "in". Short
// remainders (up to three words) are used whole; longer ones keep only the
// first word. Case is preserved from the original query.
func extractLocation(query string) string {
	locs := inWordRe.FindAllStringIndex(query, -1)
	if len(locs) == 0 {
		return DefaultLocation
	}
	rest := strings.Trim(query[locs[len(locs)-1][1]:], trimCutset)
	if rest == "" {
		return DefaultLocation
	}
	words := strings.Fields(rest)
	if len(words) <= 3 {
		return strings.Trim(strings.Join(words, " "), trimCutset)
	}
	return strings.Trim(words[0], trimCutset)
}

// extractFilename returns the first token carrying a known file extension.
func extractFilename(query, fallback string) string {
	if m := filenameRe.FindString(query); m != "" {
		return m
	}
	return fallback
}

// extractContent takes the text after the last standalone "with" as the file
// body.
func extractContent(query string) string {
	locs := withWordRe.FindAllStringIndex(query, -1)
	if len(locs) == 0 {
		return DefaultContent
	}
	rest := strings.Trim(query[locs[len(locs)-1][1]:], " \t")
	rest = strings.TrimRight(rest, "?!")
	if rest == "" {
		return DefaultContent
	}
	return rest
}

func extractQuarter(query string) string {
	if m := quarterRe.FindStringSubmatch(query); m != nil {
		return "Q" + m[1]
	}
	return DefaultQuarter
}

func extractSearchQuery(query string) string {
	if loc := searchForRe.FindStringIndex(query); loc != nil {
		if rest := strings.Trim(query[loc[1]:], trimCutset); rest != "" {
			return rest
		}
	}
	if loc := findRe.FindStringIndex(query); loc != nil {
		if rest := strings.Trim(query[loc[1]:], trimCutset); rest != "" {
			return rest
		}
	}
	return strings.Trim(query, trimCutset)
}
