package texturegraph

import (
	"fmt"
	"strings"
)

type Nodes[T Abstract] []T

func (s Nodes[T]) String() string {
	var results []string
	for _, n := range s {
		var pushToStrs []string
		if pusher, ok := Abstract(n).(GetPushToser); ok {
			isSet := map[Abstract]struct{}{}
			for _, pushTo := range pusher.GetPushTos() {
				if _, ok := isSet[pushTo.Node]; ok {
					continue
				}
				isSet[pushTo.Node] = struct{}{}
				pushToStrs = append(pushToStrs, pushTo.Node.String())
			}
		}

		switch len(pushToStrs) {
		case 0:
			results = append(results, n.String())
		case 1:
			results = append(results, fmt.Sprintf("%s -> %s", n, pushToStrs[0]))
		default:
			results = append(results, fmt.Sprintf("%s -> {%s}", n, strings.Join(pushToStrs, ", ")))
		}
	}
	switch len(results) {
	case 0:
		return "{}"
	case 1:
		return results[0]
	default:
		return fmt.Sprintf("{%s}", strings.Join(results, ", "))
	}
}

// DotString renders the graph reachable from the given nodes in the
// graphviz dot format.
func (s Nodes[T]) DotString() string {
	var result strings.Builder
	fmt.Fprintf(&result, "digraph Pipeline {\n")
	alreadyPrinted := map[Abstract]struct{}{}
	for _, n := range s {
		dotBlockContentStringWriteTo(&result, n, alreadyPrinted)
	}
	fmt.Fprintf(&result, "}\n")
	return result.String()
}

func dotBlockContentStringWriteTo(
	w *strings.Builder,
	n Abstract,
	alreadyPrinted map[Abstract]struct{},
) {
	sanitizeString := func(s string) string {
		s = strings.ReplaceAll(s, `"`, ``)
		s = strings.ReplaceAll(s, "\n", `\n`)
		s = strings.ReplaceAll(s, "\t", ``)
		return s
	}

	if _, ok := alreadyPrinted[n]; ok {
		return
	}
	fmt.Fprintf(w, "\tnode_%p [label="+`"%s"`+"]\n", n, sanitizeString(n.String()))
	alreadyPrinted[n] = struct{}{}

	pusher, ok := n.(GetPushToser)
	if !ok {
		return
	}
	for _, pushTo := range pusher.GetPushTos() {
		dotBlockContentStringWriteTo(w, pushTo.Node, alreadyPrinted)
		if pushTo.Condition == nil {
			fmt.Fprintf(w, "\tnode_%p -> node_%p\n", n, pushTo.Node)
			continue
		}
		fmt.Fprintf(
			w,
			"\tnode_%p -> node_%p [label="+`"%s"`+"]\n",
			n,
			pushTo.Node,
			sanitizeString(pushTo.Condition.String()),
		)
	}
}
