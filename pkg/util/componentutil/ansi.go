package componentutil

import (
	"strings"

	"github.com/gookit/color"
	"go.minekube.com/common/minecraft/component"
)

// Ansi returns c as text colored with ANSI escape codes.
func Ansi(c component.Component) string {
	return AnsiFromLegacy(Legacy(c), LegacyCodec.Char)
}

// AnsiFromLegacy converts the legacy format codes introduced by char
// in s to ANSI escape codes.
func AnsiFromLegacy(s string, char rune) string {
	b := new(strings.Builder)
	style := func(s string) string { return s }
	var code bool
	for _, r := range s {
		switch {
		case r == char && !code:
			code = true
		case code:
			code = false
			if r == 'r' {
				style = func(s string) string { return s }
				continue
			}
			outer, c := style, legacyColor(r)
			style = func(s string) string { return outer(c.Sprint(s)) }
		default:
			b.WriteString(style(string(r)))
		}
	}
	return b.String()
}

func legacyColor(r rune) color.Color {
	switch r {
	case '0':
		return color.Black
	case '1':
		return color.Blue
	case '2':
		return color.Green
	case '3':
		return color.Cyan
	case '4':
		return color.Red
	case '5':
		return color.Magenta
	case '6':
		return color.Yellow
	case '7':
		return color.White
	case '8':
		return color.Gray
	case '9':
		return color.LightCyan
	case 'a':
		return color.LightGreen
	case 'b':
		return color.LightBlue
	case 'c':
		return color.LightRed
	case 'd':
		return color.LightMagenta
	case 'e':
		return color.LightYellow
	case 'f':
		return color.LightWhite
	case 'k':
		return color.OpConcealed
	case 'l':
		return color.OpBold
	case 'm':
		return color.OpStrikethrough
	case 'n':
		return color.OpUnderscore
	case 'o':
		return color.OpItalic
	}
	return color.OpReset
}
