package header

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/joshuapare/fitskit/internal/format"
)

const (
	classPriority = iota
	classNormal
	classHierarch
	classEnd
)

// priorityRank orders the mandatory keywords: SIMPLE or XTENSION, BITPIX,
// NAXIS, NAXISn by axis number, PCOUNT, GCOUNT.
func priorityRank(path string) (int, bool) {
	switch path {
	case format.KeySimple, format.KeyXtension:
		return 0, true
	case format.KeyBitpix:
		return 1, true
	case format.KeyNaxis:
		return 2, true
	case format.KeyPcount:
		return 1 << 20, true
	case format.KeyGcount:
		return 1<<20 + 1, true
	}
	if rest, ok := strings.CutPrefix(path, format.KeyNaxis); ok {
		if n, err := strconv.Atoi(rest); err == nil && n > 0 && n < 1<<20-3 {
			return 3 + n, true
		}
	}
	return 0, false
}

func classOf(path string) (int, int) {
	if rank, ok := priorityRank(path); ok {
		return classPriority, rank
	}
	switch {
	case path == format.KeyEnd:
		return classEnd, 0
	case strings.Contains(path, PathSeparator):
		return classHierarch, 0
	default:
		return classNormal, 0
	}
}

// SortKeys reorders the card positions into canonical order and renumbers
// them densely from zero: mandatory keywords, other keywords in their
// original order, HIERARCH keywords in their original order, then END.
func (s *Store) SortKeys() {
	type slot struct {
		path        string
		class, rank int
	}
	slots := make([]slot, 0, len(s.index))
	for _, pos := range s.Positions() {
		path := s.index[pos]
		class, rank := classOf(path)
		slots = append(slots, slot{path: path, class: class, rank: rank})
	}
	slices.SortStableFunc(slots, func(a, b slot) int {
		if c := cmp.Compare(a.class, b.class); c != 0 {
			return c
		}
		return cmp.Compare(a.rank, b.rank)
	})

	index := make(map[int]string, len(slots))
	for i, sl := range slots {
		index[i] = sl.path
	}
	s.index = index
}
