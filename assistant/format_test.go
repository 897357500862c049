package assistant

import "testing"

func TestReindent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "braces",
			in:   "function add(a, b) {\nreturn a + b\n}",
			want: "function add(a, b) {\n  return a + b\n}",
		},
		{
			name: "flattens existing indentation",
			in:   "function f() {\n        return 1\n}",
			want: "function f() {\n  return 1\n}",
		},
		{
			name: "nested",
			in:   "if (a) {\nif (b) {\nx()\n}\n}",
			want: "if (a) {\n  if (b) {\n    x()\n  }\n}",
		},
		{
			name: "blank lines stay empty",
			in:   "f() {\n\nx()\n}",
			want: "f() {\n\n  x()\n}",
		},
		{
			name: "single line",
			in:   "x = 1",
			want: "x = 1",
		},
		{
			name: "unbalanced close never goes negative",
			in:   "}\nx = 1",
			want: "}\nx = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reindent(tt.in); got != tt.want {
				t.Errorf("Reindent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReindentIdempotent(t *testing.T) {
	in := "if (a) {\nif (b) {\nx()\n}\n}"
	once := Reindent(in)
	if twice := Reindent(once); twice != once {
		t.Errorf("Reindent is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
