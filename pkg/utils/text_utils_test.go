package utils

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

// runeWidth 每个字符宽 10 像素，方便计算
func runeWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * 10
}

// TestWrapWith 测试按单词换行
func TestWrapWith(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{
			name:     "短文本不换行",
			input:    "Hi Tori",
			maxWidth: 1000,
			want:     []string{"Hi Tori"},
		},
		{
			name:     "按单词断行",
			input:    "objects hide their state",
			maxWidth: 120,
			want:     []string{"objects hide", "their state"},
		},
		{
			name:     "超长单词强制拆开",
			input:    "polymorphism",
			maxWidth: 50,
			want:     []string{"polym", "orphi", "sm"},
		},
		{
			name:     "保留换行符",
			input:    "line one\nline two",
			maxWidth: 1000,
			want:     []string{"line one", "line two"},
		},
		{
			name:     "空文本",
			input:    "",
			maxWidth: 100,
			want:     []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapWith(tt.input, tt.maxWidth, runeWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapWith(%q, %v) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

// TestWrapText_DefaultFace 使用内置字体时长文本至少换成两行
func TestWrapText_DefaultFace(t *testing.T) {
	face := DefaultFace(18)
	if face == nil {
		t.Skip("默认字体不可用")
	}

	lines := WrapText("Encapsulation keeps an object's data private and exposes behaviour through methods.", face, 200)
	if len(lines) < 2 {
		t.Errorf("期望至少 2 行, got %d: %q", len(lines), lines)
	}
	for _, line := range lines {
		if w := measureTextWidth(line, face); w > 200 && utf8.RuneCountInString(line) > 1 {
			t.Errorf("行 %q 宽度 %.1f 超过 200", line, w)
		}
	}
}
