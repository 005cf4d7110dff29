package rstar

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDot outputs the internal structure of the tree in Graphviz DOT format
// (for debugging purposes). Internal nodes are labelled with their level and
// rectangle, records with their key and rectangle.
func (t *RTree[K]) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("strict digraph {\n")
	bw.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	var edges []string
	var recurse func(n int)
	recurse = func(n int) {
		nd := &t.nodes[n]
		if nd.isRecord() {
			label := fmt.Sprintf("%v\n%v", nd.key, nd.rect)
			fmt.Fprintf(bw, "\t\"%d\" [label=%q shape=box];\n", n, label)
			return
		}
		label := fmt.Sprintf("L%d\n%v", nd.level, nd.rect)
		fmt.Fprintf(bw, "\t\"%d\" [label=%q];\n", n, label)
		for _, c := range nd.children {
			edges = append(edges, fmt.Sprintf("\t\"%d\" -> \"%d\";\n", n, c))
			recurse(c)
		}
	}
	recurse(t.root)
	for _, e := range edges {
		bw.WriteString(e)
	}
	bw.WriteString("}\n")
	if err := bw.Flush(); err != nil {
		tracer().Errorf("rstar DOT: %s", err.Error())
		return err
	}
	return nil
}
