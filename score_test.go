package autodes

import "testing"

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name          string
		wellbeing     float64
		nutrition     float64
		motivation    float64
		relationships float64
		adhered       bool
		want          float64
	}{
		{
			name:      "all sevens with adherence",
			wellbeing: 7, nutrition: 7, motivation: 7, relationships: 7,
			adhered: true,
			want:    76,
		},
		{
			name:      "all sevens without adherence",
			wellbeing: 7, nutrition: 7, motivation: 7, relationships: 7,
			adhered: false,
			want:    56,
		},
		{
			name:      "perfect day caps at 100",
			wellbeing: 10, nutrition: 10, motivation: 10, relationships: 10,
			adhered: true,
			want:    100,
		},
		{
			name:      "perfect ratings without adherence",
			wellbeing: 10, nutrition: 10, motivation: 10, relationships: 10,
			adhered: false,
			want:    80,
		},
		{
			name: "zero day",
			want: 0,
		},
		{
			name:    "adherence alone scores the bonus",
			adhered: true,
			want:    20,
		},
		{
			name:      "out of range input still capped",
			wellbeing: 15, nutrition: 15, motivation: 15, relationships: 15,
			adhered: true,
			want:    100,
		},
		{
			name:      "mixed ratings",
			wellbeing: 8, nutrition: 5, motivation: 9, relationships: 6,
			adhered: true,
			want:    76,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.wellbeing, tt.nutrition, tt.motivation, tt.relationships, tt.adhered)
			if got != tt.want {
				t.Errorf("ComputeScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeScore_AdherenceBonusIsMonotonic(t *testing.T) {
	for _, ratings := range [][4]float64{
		{0, 0, 0, 0},
		{3, 4, 5, 6},
		{7, 7, 7, 7},
		{10, 10, 10, 10},
	} {
		without := ComputeScore(ratings[0], ratings[1], ratings[2], ratings[3], false)
		with := ComputeScore(ratings[0], ratings[1], ratings[2], ratings[3], true)
		if with < without {
			t.Errorf("adherence lowered score for %v: %v < %v", ratings, with, without)
		}
	}
}
