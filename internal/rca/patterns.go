package rca

import "regexp"

// LabeledPattern pairs a heuristic label with its compiled pattern. The
// pattern tables below are data, not control flow: they can be unit-tested
// and extended without touching the mining code.
type LabeledPattern struct {
	Label   string
	Pattern *regexp.Regexp
}

// componentPatterns extract affected-component mentions from ticket
// descriptions. The first capture group is the component term; each
// occurrence is capitalized and counted.
var componentPatterns = []LabeledPattern{
	{"system_terms", regexp.MustCompile(`(?i)(server|database|network|application|interface|API|service|cluster)`)},
	{"access_terms", regexp.MustCompile(`(?i)(authentication|authorization|login|access)`)},
	{"performance_terms", regexp.MustCompile(`(?i)(timeout|latency|slow|performance)`)},
	{"failure_terms", regexp.MustCompile(`(?i)(error|exception|failure|crash)`)},
}

// errorPatterns categorize recurring error signatures. A ticket counts for
// a category when either text field matches, regardless of how many times.
var errorPatterns = []LabeledPattern{
	{"timeouts", regexp.MustCompile(`(?i)(timeout|timed? out)`)},
	{"access_issues", regexp.MustCompile(`(?i)(access denied|unauthorized|forbidden|permission)`)},
	{"performance", regexp.MustCompile(`(?i)(slow|performance|latency|delay)`)},
	{"data_issues", regexp.MustCompile(`(?i)(data (error|issue|problem|corrupt)|inconsistent data)`)},
	{"crashes", regexp.MustCompile(`(?i)(crash|abort|terminate|stop responding)`)},
	{"connectivity", regexp.MustCompile(`(?i)(connect(ion|ivity) (issue|problem|error)|unable to connect)`)},
	{"authentication", regexp.MustCompile(`(?i)(login|authentication|auth) (failed|issue|problem|error)`)},
}

// changePatterns detect recent-change phrasing in descriptions. The matched
// span is recorded as evidence.
var changePatterns = []LabeledPattern{
	{"after_change", regexp.MustCompile(`(?i)(after|following|recent) (upgrade|update|patch|deployment|release|change)`)},
	{"implemented_on", regexp.MustCompile(`(?i)(implemented|installed|deployed|changed) (on|at)`)},
	{"new_release", regexp.MustCompile(`(?i)(new version|release|build|deployment)`)},
}

// ErrorCategories lists the common-error categories in their fixed
// precedence order.
func ErrorCategories() []string {
	categories := make([]string, len(errorPatterns))
	for i, p := range errorPatterns {
		categories[i] = p.Label
	}
	return categories
}
