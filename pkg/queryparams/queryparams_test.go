package queryparams

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		in          ListParams
		wantPage    int
		wantPerPage int
		wantOrderBy string
	}{
		{
			name:        "geçerli değerler korunur",
			in:          ListParams{Page: 3, PerPage: 50, OrderBy: "asc"},
			wantPage:    3, wantPerPage: 50, wantOrderBy: "asc",
		},
		{
			name:        "sıfır ve negatif değerler varsayılana çekilir",
			in:          ListParams{Page: 0, PerPage: -5},
			wantPage:    DefaultPage, wantPerPage: DefaultPerPage, wantOrderBy: DefaultOrderBy,
		},
		{
			name:        "per_page üst sınıra kırpılır",
			in:          ListParams{Page: 1, PerPage: 5000, OrderBy: "desc"},
			wantPage:    1, wantPerPage: MaxPerPage, wantOrderBy: "desc",
		},
		{
			name:        "bozuk order_by varsayılana döner",
			in:          ListParams{Page: 1, PerPage: 10, OrderBy: "yukarı"},
			wantPage:    1, wantPerPage: 10, wantOrderBy: DefaultOrderBy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			if tt.in.Page != tt.wantPage || tt.in.PerPage != tt.wantPerPage || tt.in.OrderBy != tt.wantOrderBy {
				t.Errorf("Validate() = %+v, beklenen page=%d per_page=%d order_by=%s",
					tt.in, tt.wantPage, tt.wantPerPage, tt.wantOrderBy)
			}
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 20}
	if got := p.CalculateOffset(); got != 40 {
		t.Errorf("CalculateOffset() = %d, beklenen 40", got)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		totalItems int64
		perPage    int
		want       int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := CalculateTotalPages(tt.totalItems, tt.perPage); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, beklenen %d", tt.totalItems, tt.perPage, got, tt.want)
		}
	}
}
