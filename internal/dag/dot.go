package dag

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteDOT renders the graph in Graphviz DOT form under the given title. One
// node is emitted per step, with an edge for every dependency.
func (g *Graph) WriteDOT(w io.Writer, title string) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, err := fmt.Fprintf(w, "digraph %s {\n", quoteID(title)); err != nil {
		return err
	}
	if err := g.writeBody(w, "  ", "", nil); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// WriteStepsDOT renders the step-level breakdown: the same topology as
// WriteDOT, but each node is annotated with its position in the execution
// order so an operator can follow the plan step by step.
func (g *Graph) WriteStepsDOT(w io.Writer, title string) error {
	order, err := g.TopoOrder()
	if err != nil {
		return err
	}
	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, err := fmt.Fprintf(w, "digraph %s {\n", quoteID(title+"_steps")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  node [shape=box];"); err != nil {
		return err
	}
	if err := g.writeBody(w, "  ", "", index); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "}")
	return err
}

// WriteCluster renders the graph as a DOT subgraph cluster, prefixing node
// IDs so that multiple graphs can share one parent digraph. The caller owns
// the surrounding digraph declaration. Callers must not hold other locks on g.
func (g *Graph) WriteCluster(w io.Writer, cluster int, label, prefix string) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, err := fmt.Fprintf(w, "  subgraph cluster_%d {\n    label=%s;\n", cluster, quoteID(label)); err != nil {
		return err
	}
	if err := g.writeBody(w, "    ", prefix, nil); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "  }")
	return err
}

// writeBody emits node and edge statements. When index is non-nil, node
// labels carry the step's execution position. Callers hold g.mutex.
func (g *Graph) writeBody(w io.Writer, indent, prefix string, index map[string]int) error {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		label := id
		if index != nil {
			label = fmt.Sprintf("%d: %s", index[id], id)
		}
		if _, err := fmt.Fprintf(w, "%s%s [label=%s];\n", indent, quoteID(prefix+id), quoteID(label)); err != nil {
			return err
		}
	}

	for _, id := range ids {
		deps := make([]string, 0, len(g.nodes[id].deps))
		for depID := range g.nodes[id].deps {
			deps = append(deps, depID)
		}
		sort.Strings(deps)
		for _, depID := range deps {
			if _, err := fmt.Fprintf(w, "%s%s -> %s;\n", indent, quoteID(prefix+depID), quoteID(prefix+id)); err != nil {
				return err
			}
		}
	}

	return nil
}

func quoteID(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `\"`) + `"`
}
