package assistant

import (
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"javascript function", "function add(a, b) {\n  return a + b\n}", "javascript"},
		{"javascript arrow", "add = (a, b) => a + b", "javascript"},
		{"python", "import os\n\nclass Walker:\n    pass", "python"},
		{"go", "package main\n\nfmt.Println(\"hi\")", "go"},
		{"cpp", "#include <iostream>\nint main() { return 0; }", "cpp"},
		{"sql", "SELECT id FROM users WHERE age > 21", "sql"},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"shell", "#!/bin/sh\ngrep -r foo .", "shell"},
		{"plain prose", "this is just some ordinary prose", "text"},
		{"empty", "", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.code); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestDetectLanguageScansFirstTenLines(t *testing.T) {
	code := strings.Repeat("plain filler line\n", 10) + "package main"
	if got := DetectLanguage(code); got != "text" {
		t.Errorf("DetectLanguage() = %q, want %q: signature past line 10 must be ignored", got, "text")
	}
}

func TestDetectLanguageFirstMatchWins(t *testing.T) {
	// Matches both the javascript and typescript tables; javascript is
	// checked first.
	code := "const x: MyInterface = {}\ninterface MyInterface {}"
	if got := DetectLanguage(code); got != "javascript" {
		t.Errorf("DetectLanguage() = %q, want %q", got, "javascript")
	}
}
