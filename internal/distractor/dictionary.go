package distractor

import "strings"

// Substitution maps a polarity-bearing term to its opposite.
type Substitution struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Dictionary is an ordered set of substitutions keyed by From. Order is part of
// the contract: it decides which distractors win when several terms match.
type Dictionary struct {
	entries []Substitution
}

// NewDictionary builds a dictionary; a later entry with the same From replaces an earlier one in place.
func NewDictionary(subs ...Substitution) Dictionary {
	return Dictionary{}.Merge(Dictionary{entries: subs})
}

// Antonyms returns both directions of each pair.
func Antonyms(pairs ...[2]string) []Substitution {
	out := make([]Substitution, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, Substitution{From: p[0], To: p[1]}, Substitution{From: p[1], To: p[0]})
	}
	return out
}

// Entries returns a copy of the substitutions in order.
func (d Dictionary) Entries() []Substitution {
	return append([]Substitution(nil), d.entries...)
}

// Len reports the number of substitutions.
func (d Dictionary) Len() int {
	return len(d.entries)
}

// Merge returns a new dictionary with overlay applied on top of d. Neither input is modified.
func (d Dictionary) Merge(overlay Dictionary) Dictionary {
	out := make([]Substitution, 0, len(d.entries)+len(overlay.entries))
	index := make(map[string]int, cap(out))
	for _, src := range [][]Substitution{d.entries, overlay.entries} {
		for _, s := range src {
			if s.From == "" || s.From == s.To {
				continue
			}
			if i, ok := index[s.From]; ok {
				out[i] = s
				continue
			}
			index[s.From] = len(out)
			out = append(out, s)
		}
	}
	return Dictionary{entries: out}
}

// Apply produces one candidate per entry whose term occurs in text, in dictionary order.
// Occurrences that belong to a longer term of the dictionary ("不是" for "是",
// "abnormal" for "normal") and latin terms glued to other letters are left alone.
func (d Dictionary) Apply(text string) []string {
	var out []string
	for i, s := range d.entries {
		if !strings.Contains(text, s.From) {
			continue
		}
		candidate := substitute(text, s, d.shadows(i))
		if candidate != text {
			out = append(out, candidate)
		}
	}
	return out
}

func (d Dictionary) shadows(i int) []string {
	from := d.entries[i].From
	var out []string
	for j, s := range d.entries {
		if j != i && len(s.From) > len(from) && strings.Contains(s.From, from) {
			out = append(out, s.From)
		}
	}
	return out
}

func substitute(text string, s Substitution, shadows []string) string {
	var b strings.Builder
	i := 0
	for {
		j := strings.Index(text[i:], s.From)
		if j < 0 {
			break
		}
		at, end := i+j, i+j+len(s.From)
		if shadowed(text, at, s.From, shadows) || !wordBounded(text, at, end) {
			b.WriteString(text[i:end])
		} else {
			b.WriteString(text[i:at])
			b.WriteString(s.To)
		}
		i = end
	}
	b.WriteString(text[i:])
	return b.String()
}

func shadowed(text string, at int, from string, shadows []string) bool {
	for _, sh := range shadows {
		for off := 0; off+len(from) <= len(sh); off++ {
			if sh[off:off+len(from)] != from {
				continue
			}
			start := at - off
			if start >= 0 && start+len(sh) <= len(text) && text[start:start+len(sh)] == sh {
				return true
			}
		}
	}
	return false
}

func wordBounded(text string, at, end int) bool {
	if at > 0 && isWordByte(text[at-1]) && isWordByte(text[at]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) && isWordByte(text[end-1]) {
		return false
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
