package verse

// Set is a set of verse numbers within one chapter.
type Set map[string]struct{}

func NewSet(numbers ...string) Set {
	s := make(Set, len(numbers))
	for _, n := range numbers {
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Has(number string) bool {
	_, ok := s[number]
	return ok
}

func (s Set) Add(number string)    { s[number] = struct{}{} }
func (s Set) Remove(number string) { delete(s, number) }

// Any reports whether at least one of numbers is in the set.
func (s Set) Any(numbers []string) bool {
	for _, n := range numbers {
		if s.Has(n) {
			return true
		}
	}
	return false
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return SortNumbers(out)
}
