package climate

import (
	"reflect"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		{
			name:   "window 1 is identity",
			values: []float64{1, 2, 3, 4, 5},
			window: 1,
			want:   []float64{1, 2, 3, 4, 5},
		},
		{
			name:   "window 3 shrinks at edges",
			values: []float64{1, 2, 3, 4, 5},
			window: 3,
			want:   []float64{1.5, 2, 3, 4, 4.5},
		},
		{
			name:   "window larger than series",
			values: []float64{2, 4},
			window: 9,
			want:   []float64{3, 3},
		},
		{
			name:   "empty series",
			values: []float64{},
			window: 5,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MovingAverage(tt.values, tt.window)
			if len(got) != len(tt.values) {
				t.Fatalf("length %d, want %d", len(got), len(tt.values))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MovingAverage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMovingAverageDoesNotMutateInput(t *testing.T) {
	values := []float64{5, 1, 9}
	MovingAverage(values, 3)
	if !reflect.DeepEqual(values, []float64{5, 1, 9}) {
		t.Errorf("input mutated: %v", values)
	}
}
