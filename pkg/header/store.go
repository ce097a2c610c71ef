package header

import (
	"regexp"
	"slices"
	"strings"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/internal/infer"
	"github.com/joshuapare/fitskit/pkg/types"
)

// Keyword is the result of a keyword lookup.
type Keyword struct {
	Path       string
	Value      types.Value
	Comment    string
	Type       types.KeyType
	Commentary bool
}

// Store holds the keywords of one header: a tree keyed by path segments
// and an index mapping card positions to keyword paths. Positions may be
// sparse; free-text keywords occupy one position per occurrence.
type Store struct {
	root  *Group
	index map[int]string

	dataSize   int64
	dataBlocks int64
}

// NewStore returns an empty keyword store.
func NewStore() *Store {
	return &Store{root: newGroup(""), index: make(map[int]string)}
}

// Root returns the root group of the keyword tree.
func (s *Store) Root() *Group {
	return s.root
}

// Len returns the number of occupied card positions.
func (s *Store) Len() int {
	return len(s.index)
}

// Positions returns the occupied card positions in ascending order.
func (s *Store) Positions() []int {
	out := make([]int, 0, len(s.index))
	for p := range s.index {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// At returns the keyword path at position pos.
func (s *Store) At(pos int) (string, bool) {
	path, ok := s.index[pos]
	return path, ok
}

// Each calls fn for every occupied position in order. occurrence counts
// earlier positions holding the same path, so free-text keywords can be
// matched to their sequence elements.
func (s *Store) Each(fn func(pos int, path string, occurrence int) error) error {
	seen := make(map[string]int)
	for _, pos := range s.Positions() {
		path := s.index[pos]
		if err := fn(pos, path, seen[path]); err != nil {
			return err
		}
		seen[path]++
	}
	return nil
}

// Keys returns the distinct keyword paths in position order.
func (s *Store) Keys() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, pos := range s.Positions() {
		path := s.index[pos]
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	return out
}

func (s *Store) find(path string) Node {
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil
	}
	g := s.root
	for i, seg := range segs {
		n, ok := g.Child(seg)
		if !ok {
			return nil
		}
		if i == len(segs)-1 {
			return n
		}
		next, ok := n.(*Group)
		if !ok {
			return nil
		}
		g = next
	}
	return nil
}

// Node returns the tree node at path, or nil.
func (s *Store) Node(path string) Node {
	return s.find(path)
}

func (s *Store) leaf(path string) *Leaf {
	l, _ := s.find(path).(*Leaf)
	return l
}

// Has reports whether path names a keyword.
func (s *Store) Has(path string) bool {
	return s.leaf(path) != nil
}

// Keyword returns the keyword at path. The type is derived on first access
// when the stored value was not classified yet. The boolean is false when
// the path names no keyword.
func (s *Store) Keyword(path string) (Keyword, bool) {
	path = NormalizePath(path)
	l := s.leaf(path)
	if l == nil {
		return Keyword{Path: path}, false
	}
	if l.Value.Type == types.TypeUnknown && len(l.Value.Seq) == 0 {
		l.Value = infer.Infer(l.Value.Text, l.Value.Quoted)
	}
	return Keyword{
		Path:       path,
		Value:      l.Value,
		Comment:    l.Comment,
		Type:       l.Value.Type,
		Commentary: l.Commentary,
	}, true
}

// Value returns the textual value at path, or "".
func (s *Store) Value(path string) string {
	kw, _ := s.Keyword(path)
	return kw.Value.String()
}

// Type returns the type letter of the keyword at path.
func (s *Store) Type(path string) types.KeyType {
	kw, _ := s.Keyword(path)
	return kw.Type
}

// UpdateKeyword inserts or replaces a keyword.
//
// An existing keyword is left untouched unless force is set. Free-text
// keywords always append a new occurrence. The path is checked against the
// tree before anything is modified: a prefix that is a keyword, or a full
// path that is a HIERARCH group, is a structure error.
func (s *Store) UpdateKeyword(e types.Entry, force bool) error {
	path := NormalizePath(e.Path)
	segs := splitPath(path)
	if len(segs) == 0 {
		return types.Errorf(types.ErrKindStructure, format.ErrEmptyKeyword, "update keyword")
	}

	g, depth, err := s.walk(segs)
	if err != nil {
		return err
	}
	last := segs[len(segs)-1]

	var existing *Leaf
	if depth == len(segs)-1 {
		if n, ok := g.Child(last); ok {
			l, isLeaf := n.(*Leaf)
			if !isLeaf {
				return types.Errorf(types.ErrKindStructure, nil, "keyword %q is a HIERARCH group", path)
			}
			existing = l
		}
	}

	if format.IsFreeText(path) {
		return s.appendText(g, path, existing, e)
	}

	if existing != nil {
		if !force {
			return nil
		}
		existing.Value = e.Value
		existing.Comment = e.Comment
		existing.Commentary = e.Commentary
		if e.Index >= 0 && s.KeyIndex(path) != e.Index {
			s.SetKeyIndex(e.Index, path)
		}
		return nil
	}

	for _, seg := range segs[depth : len(segs)-1] {
		ng := newGroup(seg)
		g.set(seg, ng)
		g = ng
	}
	g.set(last, &Leaf{Value: e.Value, Comment: e.Comment, Commentary: e.Commentary})
	s.index[s.place(e.Index)] = path
	if path != format.KeyEnd {
		s.keepEndLast()
	}
	return nil
}

func (s *Store) appendText(g *Group, path string, l *Leaf, e types.Entry) error {
	if l == nil {
		l = &Leaf{Value: types.Value{Type: types.TypeChar}}
		g.set(path, l)
	}
	texts := e.Value.Seq
	if len(texts) == 0 {
		texts = []string{e.Value.Text}
	}
	idx := e.Index
	for _, text := range texts {
		pos := s.place(idx)
		s.index[pos] = path
		ord := s.ordinal(path, pos)
		l.Value.Seq = slices.Insert(l.Value.Seq, ord, text)
		if idx >= 0 {
			idx = pos + 1
		}
	}
	s.keepEndLast()
	return nil
}

// walk follows the existing groups of segs' prefix. It returns the deepest
// group reached and how many prefix segments exist.
func (s *Store) walk(segs []string) (*Group, int, error) {
	g := s.root
	for i, seg := range segs[:len(segs)-1] {
		n, ok := g.Child(seg)
		if !ok {
			return g, i, nil
		}
		next, ok := n.(*Group)
		if !ok {
			return nil, i, types.Errorf(types.ErrKindStructure, nil,
				"keyword %q collides with %q", strings.Join(segs, PathSeparator), strings.Join(segs[:i+1], PathSeparator))
		}
		g = next
	}
	return g, len(segs) - 1, nil
}

// place reserves a card position. A negative idx takes END's slot and
// pushes END one further; an occupied idx shifts later cards up by one.
func (s *Store) place(idx int) int {
	if idx < 0 {
		if end := s.KeyIndex(format.KeyEnd); end >= 0 {
			delete(s.index, end)
			s.index[end+1] = format.KeyEnd
			return end
		}
		return s.maxPos() + 1
	}
	if _, taken := s.index[idx]; taken {
		shifted := make(map[int]string, len(s.index)+1)
		for p, k := range s.index {
			if p >= idx {
				p++
			}
			shifted[p] = k
		}
		s.index = shifted
	}
	return idx
}

func (s *Store) keepEndLast() {
	end := s.KeyIndex(format.KeyEnd)
	if end < 0 {
		return
	}
	if last := s.maxPos(); last != end {
		delete(s.index, end)
		s.index[last+1] = format.KeyEnd
	}
}

func (s *Store) maxPos() int {
	hi := -1
	for p := range s.index {
		if p > hi {
			hi = p
		}
	}
	return hi
}

// ordinal counts the positions before pos that hold path.
func (s *Store) ordinal(path string, pos int) int {
	n := 0
	for p, k := range s.index {
		if k == path && p < pos {
			n++
		}
	}
	return n
}

// KeyIndex returns the first card position of path, or -1.
func (s *Store) KeyIndex(path string) int {
	path = NormalizePath(path)
	best := -1
	for p, k := range s.index {
		if k == path && (best < 0 || p < best) {
			best = p
		}
	}
	return best
}

// DeleteKeyIndex removes the first occurrence of path and returns the
// position it held, or -1. The keyword is dropped from the tree once no
// position refers to it.
func (s *Store) DeleteKeyIndex(path string) int {
	pos := s.KeyIndex(path)
	if pos < 0 {
		return -1
	}
	s.removeAt(pos)
	return pos
}

func (s *Store) removeAt(pos int) {
	path := s.index[pos]
	if format.IsFreeText(path) {
		if l := s.leaf(path); l != nil {
			if ord := s.ordinal(path, pos); ord < len(l.Value.Seq) {
				l.Value.Seq = slices.Delete(l.Value.Seq, ord, ord+1)
			}
		}
	}
	delete(s.index, pos)
	if s.KeyIndex(path) < 0 {
		s.prune(path)
	}
}

// prune removes the leaf at path and any groups left empty.
func (s *Store) prune(path string) {
	segs := splitPath(path)
	chain := []*Group{s.root}
	g := s.root
	for _, seg := range segs[:len(segs)-1] {
		n, ok := g.Child(seg)
		if !ok {
			return
		}
		next, ok := n.(*Group)
		if !ok {
			return
		}
		chain = append(chain, next)
		g = next
	}
	g.remove(segs[len(segs)-1])
	for i := len(chain) - 1; i > 0 && chain[i].Len() == 0; i-- {
		chain[i-1].remove(segs[i-1])
	}
}

// SetKeyIndex moves the first occurrence of path to position pos. A
// different keyword already at pos is evicted. When pos holds a later
// occurrence of the same free-text keyword, the first text moves there and
// the texts in between shift one occurrence earlier. It reports whether path
// exists.
func (s *Store) SetKeyIndex(pos int, path string) bool {
	path = NormalizePath(path)
	old := s.KeyIndex(path)
	if old < 0 {
		return false
	}
	if old == pos {
		return true
	}
	occupant, taken := s.index[pos]
	if taken && occupant == path {
		// same free-text keyword: positions stay, texts rotate
		l := s.leaf(path)
		from, to := s.ordinal(path, old), s.ordinal(path, pos)
		text := l.Value.Seq[from]
		l.Value.Seq = slices.Insert(slices.Delete(l.Value.Seq, from, from+1), to, text)
		return true
	}
	if taken {
		s.removeAt(pos)
		if old = s.KeyIndex(path); old < 0 {
			return false
		}
	}

	if !format.IsFreeText(path) {
		delete(s.index, old)
		s.index[pos] = path
		return true
	}

	l := s.leaf(path)
	ord := s.ordinal(path, old)
	text := l.Value.Seq[ord]
	l.Value.Seq = slices.Delete(l.Value.Seq, ord, ord+1)
	delete(s.index, old)
	s.index[pos] = path
	l.Value.Seq = slices.Insert(l.Value.Seq, s.ordinal(path, pos), text)
	return true
}

// RegexpKeys returns the distinct keyword paths matching pattern, anchored
// at the start of the path, in position order.
func (s *Store) RegexpKeys(pattern string) ([]string, error) {
	rx, err := compileAnchored(pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, path := range s.Keys() {
		if rx.MatchString(path) {
			out = append(out, path)
		}
	}
	return out, nil
}

// Filter removes every keyword matching pattern and returns how many card
// positions were freed.
func (s *Store) Filter(pattern string) (int, error) {
	keys, err := s.RegexpKeys(pattern)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, path := range keys {
		for s.DeleteKeyIndex(path) >= 0 {
			removed++
		}
	}
	return removed, nil
}

func compileAnchored(pattern string) (*regexp.Regexp, error) {
	rx, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, types.Errorf(types.ErrKindStructure, err, "invalid keyword pattern %q", pattern)
	}
	return rx, nil
}
