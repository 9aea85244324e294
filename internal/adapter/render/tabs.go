package render

import "strings"

// ExpandTabs replaces every tab in text with width spaces. A negative width
// keeps the tabs.
func ExpandTabs(text string, width int) string {
	if width < 0 {
		return text
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", width))
}
