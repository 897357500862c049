package assistant

import "strings"

// Intent is the backend capability a user utterance routes to.
type Intent int

const (
	// GenericQuery routes to the free-form query endpoint.
	GenericQuery Intent = iota
	// CodeAnalysis routes to the structured code-analysis endpoint.
	CodeAnalysis
)

// String returns the string representation of the intent.
func (i Intent) String() string {
	if i == CodeAnalysis {
		return "code-analysis"
	}
	return "generic-query"
}

// analysisKeywords trigger the code-analysis path when the editor holds code.
// Deliberately crude: "review my day" with code present still classifies as
// CodeAnalysis.
var analysisKeywords = []string{"analyze", "code", "debug", "optimize", "review"}

// Classify maps a user utterance plus the editor state to an intent. It
// returns CodeAnalysis iff the editor holds code and the utterance contains,
// case-insensitively, at least one analysis keyword.
func Classify(utterance string, hasPendingCode bool) Intent {
	if !hasPendingCode {
		return GenericQuery
	}
	lower := strings.ToLower(utterance)
	for _, kw := range analysisKeywords {
		if strings.Contains(lower, kw) {
			return CodeAnalysis
		}
	}
	return GenericQuery
}
