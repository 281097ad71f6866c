package main

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
)

// pageTreeString draws the overview descriptors of x with their sections or
// members, in render order.
func pageTreeString(x *Index, title string) string {
	root := gotree.New(title)
	for _, d := range x.Pages().Pages() {
		node := root.Add(fmt.Sprintf("%s %s -> %s [%s]", d.Kind, d.Key, d.Path, d.Template))
		if d.IsBranch() {
			for _, c := range d.Sections() {
				section := node.Add(fmt.Sprintf("%s (%d)", c.Title, c.Len()))
				addEntries(section, c.Entries())
			}
			continue
		}
		addEntries(node, d.Entries())
	}
	return root.Print()
}

func addEntries(node gotree.Tree, es entries) {
	for _, e := range es {
		node.Add(e.FormatDateShort() + " " + e.Title)
	}
}
