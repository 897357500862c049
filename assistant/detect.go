package assistant

import (
	"regexp"
	"strings"
)

// languagePattern pairs a language name with a signature regexp. Order
// matters: the first match wins, so broad languages come first.
type languagePattern struct {
	name string
	re   *regexp.Regexp
}

var languagePatterns = []languagePattern{
	{"javascript", regexp.MustCompile(`\b(function|const|let|var|console\.log)\b|=>`)},
	{"python", regexp.MustCompile(`\b(def|import|print|if __name__|class)\b`)},
	{"java", regexp.MustCompile(`\b(public class|public static void main|System\.out\.println)\b`)},
	{"cpp", regexp.MustCompile(`#include|\bstd::|\b(cout|cin|int main)\b`)},
	{"csharp", regexp.MustCompile(`\b(using System|Console\.WriteLine)\b`)},
	{"go", regexp.MustCompile(`\b(package main|func main|fmt\.Println)\b`)},
	{"rust", regexp.MustCompile(`\b(fn main|use std)\b|println!`)},
	{"php", regexp.MustCompile(`<\?php|\$\w+`)},
	{"ruby", regexp.MustCompile(`\b(puts|require|attr_accessor)\b`)},
	{"swift", regexp.MustCompile(`\b(import Foundation|UIKit)\b`)},
	{"kotlin", regexp.MustCompile(`\b(fun main|val|companion object)\b`)},
	{"typescript", regexp.MustCompile(`\b(interface|type|enum|namespace)\b`)},
	{"sql", regexp.MustCompile(`(?i)\b(SELECT|FROM|WHERE|INSERT|UPDATE|DELETE)\b`)},
	{"html", regexp.MustCompile(`(?i)</?[a-z][\s\S]*>`)},
	{"css", regexp.MustCompile(`\{[\s\S]*:[^}]*\}`)},
	{"json", regexp.MustCompile(`^\s*[\{\[]`)},
	{"yaml", regexp.MustCompile(`(?m)^[\s]*\w+:\s`)},
	{"shell", regexp.MustCompile(`\b(echo|mkdir|grep|awk|sed)\b|^#!`)},
	{"powershell", regexp.MustCompile(`\b(Get-|Set-|New-|Remove-|Write-Host)`)},
	{"r", regexp.MustCompile(`\b(library|data\.frame|summary)\b`)},
	{"scala", regexp.MustCompile(`\b(object|extends|trait)\b`)},
	{"perl", regexp.MustCompile(`\buse strict\b|\bmy \$|\bchomp\b`)},
	{"lua", regexp.MustCompile(`\b(local|elseif)\b`)},
	{"haskell", regexp.MustCompile(`\b(putStrLn|where)\b`)},
	{"clojure", regexp.MustCompile(`\(defn|\(println|\(let`)},
	{"assembly", regexp.MustCompile(`(?i)\b(mov|cmp|jmp|ret)\b`)},
}

// DetectLanguage guesses the language of a code snippet by scanning its
// first ten lines against a signature table. Returns "text" when nothing
// matches. A heuristic, not a parser: short or ambiguous snippets can land
// on the wrong language.
func DetectLanguage(code string) string {
	lines := strings.Split(code, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	sample := strings.Join(lines, "\n")

	for _, p := range languagePatterns {
		if p.re.MatchString(sample) {
			return p.name
		}
	}
	return "text"
}
