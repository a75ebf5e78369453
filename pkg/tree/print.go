package tree

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented dump of the subtree at root to w, one node per
// line with its style summary and, when available, its computed layout.
func (t *Tree) Print(w io.Writer, root NodeID) {
	if !t.Contains(root) {
		fmt.Fprintf(w, "%v <stale>\n", root)
		return
	}
	t.printNode(w, root, "", "")
}

func (t *Tree) printNode(w io.Writer, id NodeID, lead, childLead string) {
	n := t.get(id)
	line := fmt.Sprintf("%s%v [%s]", lead, id, n.style.Summary())
	if l, err := t.Layout(id); err == nil {
		line += fmt.Sprintf(" loc=%v size=%v order=%d", l.Location, l.Size, l.Order)
	}
	fmt.Fprintln(w, strings.TrimRight(line, " "))
	for i, c := range n.children {
		if i == len(n.children)-1 {
			t.printNode(w, c, childLead+"└── ", childLead+"    ")
		} else {
			t.printNode(w, c, childLead+"├── ", childLead+"│   ")
		}
	}
}
