package rules

import "sort"

type heuristicKey struct {
	language  string
	construct string
}

// Heuristic construct table: (language, construct) -> the token scanned
// for in units of that language. Tokens end with "(" so the matcher can
// anchor on call sites rather than bare identifiers.
var heuristicConstructs = map[heuristicKey]string{
	{"javascript", "eval"}:         "eval(",
	{"javascript", "new_function"}: "Function(",
	{"javascript", "exec"}:         "child_process.exec(",
	{"typescript", "eval"}:         "eval(",
	{"python", "eval"}:             "eval(",
	{"python", "exec"}:             "exec(",
	{"python", "pickle_loads"}:     "pickle.loads(",
	{"python", "os_system"}:        "os.system(",
	{"go", "unsafe_pointer"}:       "unsafe.Pointer(",
}

func heuristicNeedle(language, construct string) (string, bool) {
	needle, ok := heuristicConstructs[heuristicKey{language, construct}]
	return needle, ok
}

// HeuristicConstructs returns "language/construct" identifiers for every
// registered heuristic, sorted.
func HeuristicConstructs() []string {
	out := make([]string, 0, len(heuristicConstructs))
	for k := range heuristicConstructs {
		out = append(out, k.language+"/"+k.construct)
	}
	sort.Strings(out)
	return out
}
