package server

import "strings"

// ruToLatin maps lower-case Cyrillic letters to their latin rendering used
// for stored document names.
var ruToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate renders Cyrillic text in latin letters and replaces spaces
// with underscores, so document links stay ASCII-safe. Characters outside
// the map pass through unchanged.
func Transliterate(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r == ' ' {
			b.WriteByte('_')
			continue
		}
		lower := unicodeToLower(r)
		if latin, ok := ruToLatin[lower]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unicodeToLower lowers Cyrillic letters without pulling in the full
// strings.ToLower pass per rune.
func unicodeToLower(r rune) rune {
	if r >= 'А' && r <= 'Я' {
		return r + ('а' - 'А')
	}
	if r == 'Ё' {
		return 'ё'
	}
	return r
}
