package utils

import (
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本，"\n" 为强制换行
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行
//   - 单个单词超过最大宽度时按字符强制断行
func WrapText(textStr string, font text.Face, maxWidth float64) []string {
	if font == nil || maxWidth <= 0 {
		return strings.Split(textStr, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, font, maxWidth)...)
	}
	return lines
}

func wrapParagraph(paragraph string, font text.Face, maxWidth float64) []string {
	// 保留段首缩进（如规则中的续行）
	indent := paragraph[:len(paragraph)-len(strings.TrimLeftFunc(paragraph, unicode.IsSpace))]
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := indent
	for _, word := range words {
		candidate := word
		if strings.TrimSpace(current) != "" {
			candidate = current + " " + word
		} else {
			candidate = current + word
		}

		if measureTextWidth(candidate, font) <= maxWidth {
			current = candidate
			continue
		}

		if strings.TrimSpace(current) != "" {
			lines = append(lines, current)
			current = indent
		}

		// 单词本身超宽：按字符切开
		for measureTextWidth(current+word, font) > maxWidth && len([]rune(word)) > 1 {
			runes := []rune(word)
			cut := len(runes) - 1
			for cut > 1 && measureTextWidth(current+string(runes[:cut]), font) > maxWidth {
				cut--
			}
			lines = append(lines, current+string(runes[:cut]))
			word = string(runes[cut:])
			current = indent
		}
		current += word
	}

	if strings.TrimSpace(current) != "" {
		lines = append(lines, current)
	}
	return lines
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// PlainText 去掉界面字体无法显示的字符（emoji 及变体选择符），并整理空格
func PlainText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r > 0xFFFF || (r >= 0xFE00 && r <= 0xFE0F) || r == 0x200D {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
