package appointments

import "testing"

func TestNameSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Maria Souza", "maria-souza"},
		{"accented", "João Silva", "joão-silva"},
		{"extra spaces", "  Ana   Paula  ", "ana-paula"},
		{"punctuation", "Dr. Carlos Jr.", "dr-carlos-jr"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameSlug(tt.in); got != tt.want {
				t.Errorf("NameSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
