package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
//
// 换行规则：
//   - 优先在空格处断行（英文按单词）
//   - 单词本身超过最大宽度时按字符强制断行
//   - 原文中的换行符保留
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if face == nil {
		return []string{textStr}
	}
	return wrapWith(textStr, maxWidth, func(s string) float64 {
		return measureTextWidth(s, face)
	})
}

// wrapWith 使用给定的测量函数换行，便于脱离字体测试
func wrapWith(textStr string, maxWidth float64, measure func(string) float64) []string {
	if textStr == "" || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxWidth, measure)...)
	}
	return lines
}

func wrapParagraph(paragraph string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}

		// 单词本身超宽：按字符拆开
		if measure(word) > maxWidth {
			pieces := splitRunes(word, maxWidth, measure)
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitRunes 按字符强制断开超长单词，至少保证每段一个字符
func splitRunes(word string, maxWidth float64, measure func(string) float64) []string {
	var pieces []string
	piece := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]
		candidate := piece + string(r)
		if piece != "" && measure(candidate) > maxWidth {
			pieces = append(pieces, piece)
			piece = string(r)
			continue
		}
		piece = candidate
	}
	return append(pieces, piece)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}
