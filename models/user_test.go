package models

import "testing"

func TestValidLanguage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"english", LanguageEnglish, true},
		{"french", LanguageFrench, true},
		{"unknown", "de-DE", false},
		{"empty", "", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidLanguage(tt.value); got != tt.want {
				t.Fatalf("ValidLanguage(%q) = %t, want %t", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()

	if got := NormalizeLanguage(" " + LanguageFrench + " "); got != LanguageFrench {
		t.Fatalf("NormalizeLanguage returned %q, want %q", got, LanguageFrench)
	}

	if got := NormalizeLanguage("klingon"); got != DefaultLanguage {
		t.Fatalf("NormalizeLanguage returned %q, want %q", got, DefaultLanguage)
	}
}
