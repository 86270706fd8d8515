package marquee

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpr(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    func(p Pixel) bool
		wantErr bool
	}{
		{
			name: "diagonal",
			expr: "row == column % 7",
			want: func(p Pixel) bool { return p.Row() == p.Column()%7 },
		},
		{
			name: "same as box",
			expr: "row == 0 || row == 6 || column == 0 || column == 51",
			want: func(p Pixel) bool {
				return p.Row() == 0 || p.Row() == 6 || p.Column() == 0 || p.Column() == 51
			},
		},
		{
			name: "pixel index",
			expr: "pixel < 10",
			want: func(p Pixel) bool { return p < 10 },
		},
		{
			name: "nothing",
			expr: "false",
			want: func(p Pixel) bool { return false },
		},
		{
			name:    "not bool",
			expr:    "row + 1",
			wantErr: true,
		},
		{
			name:    "unknown variable",
			expr:    "week == 1",
			wantErr: true,
		},
		{
			name:    "syntax error",
			expr:    "row ==",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expr(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expr(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			var want []Pixel
			for i := range Size {
				if tt.want(Pixel(i)) {
					want = append(want, Pixel(i))
				}
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Expr(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}
