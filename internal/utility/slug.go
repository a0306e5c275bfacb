package utility

import (
	"strings"
	"unicode"
)

// latinFold map các ký tự Latin có dấu (tiếng Pháp) về ký tự ASCII tương ứng
var latinFold = map[rune]string{
	'à': "a", 'â': "a", 'ä': "a", 'á': "a", 'ã': "a",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'î': "i", 'ï': "i", 'í': "i",
	'ò': "o", 'ô': "o", 'ö': "o", 'ó': "o", 'õ': "o",
	'ù': "u", 'û': "u", 'ü': "u", 'ú': "u",
	'ÿ': "y", 'ý': "y",
	'ñ': "n",
	'œ': "oe", 'æ': "ae",
}

// Slugify sinh slug URL-safe từ tên sản phẩm.
// Giữ nguyên chữ cái Ả Rập (unicode letter), fold chữ Latin có dấu về ASCII,
// thay mọi ký tự khác bằng dấu gạch ngang và gộp các dấu gạch liên tiếp.
// @params - chuỗi nguồn (tên tiếng Ả Rập hoặc tiếng Pháp)
// @returns - slug đã chuẩn hóa
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Arabic, r):
			b.WriteRune(r)
		default:
			if folded, ok := latinFold[r]; ok {
				b.WriteString(folded)
			} else {
				b.WriteRune('-')
			}
		}
	}

	// Gộp các dấu gạch liên tiếp và cắt gạch ở hai đầu
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}
