package header

import (
	"strings"

	"github.com/Velocidex/ordereddict"

	"github.com/joshuapare/fitskit/pkg/types"
)

// PathSeparator separates the segments of a HIERARCH keyword path.
const PathSeparator = " "

// Node is either a *Group or a *Leaf of the keyword tree.
type Node interface {
	node()
}

// Leaf holds a keyword's value.
type Leaf struct {
	Value   types.Value
	Comment string
	// Commentary marks a keyword card without a value indicator.
	Commentary bool
}

// Group is an interior node of a HIERARCH path. Children keep insertion
// order.
type Group struct {
	Name     string
	children *ordereddict.Dict
}

func (*Leaf) node()  {}
func (*Group) node() {}

func newGroup(name string) *Group {
	return &Group{Name: name, children: ordereddict.NewDict()}
}

// Child returns the child named name.
func (g *Group) Child(name string) (Node, bool) {
	v, ok := g.children.Get(name)
	if !ok {
		return nil, false
	}
	n, ok := v.(Node)
	return n, ok
}

// Names returns the child names in insertion order.
func (g *Group) Names() []string {
	return g.children.Keys()
}

// Len returns the number of children.
func (g *Group) Len() int {
	return g.children.Len()
}

func (g *Group) set(name string, n Node) {
	g.children.Set(name, n)
}

func (g *Group) remove(name string) {
	g.children.Delete(name)
}

// splitPath normalizes a keyword path into its segments.
func splitPath(path string) []string {
	return strings.Fields(path)
}

// NormalizePath collapses runs of blanks in a keyword path.
func NormalizePath(path string) string {
	return strings.Join(splitPath(path), PathSeparator)
}
