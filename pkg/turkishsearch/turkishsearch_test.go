package turkishsearch

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"İstanbul", "istanbul"},
		{"IŞIK", "ışık"},
		{"Çığ", "çığ"},
		{"ÖĞÜN", "öğün"},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, beklenen %q", tt.in, got, tt.want)
		}
	}
}

func TestSQLFilter(t *testing.T) {
	t.Run("boş terim her satırı geçirir", func(t *testing.T) {
		cond, args := SQLFilter("title", "  ")
		if cond != "1=1" || args != nil {
			t.Errorf("SQLFilter() = %q, %v", cond, args)
		}
	})

	t.Run("ASCII terim tek desenle aranır", func(t *testing.T) {
		cond, args := SQLFilter("title", "konser")
		if cond != "title ILIKE ?" {
			t.Errorf("koşul = %q", cond)
		}
		if len(args) != 1 || args[0] != "%konser%" {
			t.Errorf("argümanlar = %v", args)
		}
	})

	t.Run("Türkçe terim iki desenle aranır", func(t *testing.T) {
		cond, args := SQLFilter("title", "İstanbul")
		if cond != "(title ILIKE ? OR title ILIKE ?)" {
			t.Errorf("koşul = %q", cond)
		}
		if len(args) != 2 || args[0] != "%İstanbul%" || args[1] != "%istanbul%" {
			t.Errorf("argümanlar = %v", args)
		}
	})
}
