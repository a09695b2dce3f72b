package mutation

import "testing"

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "DELETE WHERE x", "DELETE WHERE x"},
		{"single quote", "name = 'ann'", `name = \'ann\'`},
		{"backslash", `a \ b`, `a \\ b`},
		{"newline", "a\nb", `a\nb`},
		{"tab", "a\tb", `a\tb`},
		{"carriage return", "a\rb", `a\rb`},
		{"backspace", "a\bb", `a\bb`},
		{"form feed", "a\fb", `a\fb`},
		{"nul", "a\x00b", `a\0b`},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := escapeString(tc.in)
			if got != tc.want {
				t.Errorf("escapeString(%q) = %q, want %q", tc.in, got, tc.want)
			}

			back, err := unescapeString(got)
			if err != nil {
				t.Fatalf("unescapeString(%q) error: %v", got, err)
			}
			if back != tc.in {
				t.Errorf("unescapeString(escapeString(%q)) = %q", tc.in, back)
			}
		})
	}
}

func TestUnescapeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unknown escape keeps character", `a\xb`, "axb"},
		{"escaped quote", `\'ann\'`, "'ann'"},
		{"double backslash", `\\n`, `\n`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := unescapeString(tc.in)
			if err != nil {
				t.Fatalf("unescapeString(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("unescapeString(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUnescapeStringTrailingBackslash(t *testing.T) {
	if _, err := unescapeString(`abc\`); err == nil {
		t.Fatal("unescapeString accepted a trailing backslash")
	}
}
