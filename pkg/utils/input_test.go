package utils

import (
	"image"
	"testing"
)

func TestPointIn(t *testing.T) {
	r := image.Rect(10, 20, 110, 70)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"左上角", 10, 20, true},
		{"内部", 60, 45, true},
		{"右边界不包含", 110, 45, false},
		{"下边界不包含", 60, 70, false},
		{"外部", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointIn(r, tt.x, tt.y); got != tt.want {
				t.Errorf("PointIn(%v, %d, %d) = %v, want %v", r, tt.x, tt.y, got, tt.want)
			}
		})
	}
}
