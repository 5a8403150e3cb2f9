package style

import (
	"errors"
	"strings"
	"testing"
)

func TestScopeToEditable(t *testing.T) {
	in := ".card {\n font-family: arial;\n}\n.card.night_mode { color: white; }"
	want := ".note-editable  {\n font-family: arial;\n}\n.note-editable .night_mode { color: white; }"
	if got := ScopeToEditable(in); got != want {
		t.Errorf("ScopeToEditable:\n got %q\nwant %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	boom := errors.New("no css key")

	tests := []struct {
		name    string
		css     string
		err     error
		want    string
		wantErr bool
	}{
		{"ok", ".card { color: red; }", nil, ".note-editable  { color: red; }", false},
		{"lookup failure", "", boom, DefaultCSS, true},
		{"blank css", "  \n\t", nil, DefaultCSS, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(42, tt.css, tt.err)
			if got != tt.want {
				t.Errorf("css = %q, want %q", got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var re *ResolutionError
			if !errors.As(err, &re) || re.ModelID != 42 {
				t.Errorf("expected *ResolutionError for model 42, got %#v", err)
			}
		})
	}

	_, err := Resolve(1, "", boom)
	if !errors.Is(err, boom) {
		t.Error("ResolutionError should unwrap to the lookup error")
	}
}

func TestDynamicFontSize(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{"empty", "", 14},
		{"short", "abcd", 14},
		{"five chars", "abcde", 13},
		{"tags do not count", "<b>abcd</b><i></i>", 14},
		{"br counts as one", "abcd<br/>", 13},
		{"hr counts as one", "abcd<hr class=\"x\">", 13},
		{"nbsp counts as one", "abcd&nbsp;", 13},
		{"floor", strings.Repeat("x", 1000), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DynamicFontSize(tt.html); got != tt.want {
				t.Errorf("DynamicFontSize(%q) = %d, want %d", tt.html, got, tt.want)
			}
		})
	}
}

func TestAppearanceCSS(t *testing.T) {
	css := Appearance{}.CSS()
	if !strings.Contains(css, "zoom: 1.00") {
		t.Errorf("default zoom missing: %q", css)
	}
	if strings.Contains(css, "font-family") || strings.Contains(css, "background-color") {
		t.Errorf("default appearance should not set font or colours: %q", css)
	}

	css = Appearance{FontFamily: "Noto Sans", CardZoom: 150, NightMode: true}.CSS()
	for _, want := range []string{"zoom: 1.50", `font-family: "Noto Sans"`, "background-color: #303030"} {
		if !strings.Contains(css, want) {
			t.Errorf("expected %q in %q", want, css)
		}
	}
}
