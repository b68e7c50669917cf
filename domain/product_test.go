package domain

import "testing"

func TestProduct_AverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		avg     float64
		count   int
	}{
		{"no ratings", nil, 0, 0},
		{"single", []int{4}, 4.0, 1},
		{"basmati rice fixture", []int{5, 4, 5, 5, 4}, 4.6, 5},
		{"rounds to one decimal", []int{3, 4, 4}, 3.7, 3},
		{"all fives", []int{5, 5, 5}, 5.0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Ratings: tt.ratings}
			avg, count := p.AverageRating()
			if avg != tt.avg || count != tt.count {
				t.Errorf("AverageRating() = (%v, %d), want (%v, %d)", avg, count, tt.avg, tt.count)
			}
		})
	}
}
