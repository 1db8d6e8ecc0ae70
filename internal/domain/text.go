package domain

// Ellipsis marks text shortened by Truncate.
const Ellipsis = "..."

// Truncate cuts s to max characters (runes) and appends Ellipsis.
// Strings of at most max characters are returned unchanged.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + Ellipsis
}
