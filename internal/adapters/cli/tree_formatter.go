package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/alchemist-go/internal/application/alchemy/services"
)

// TreeFormatter renders recipe dependency trees
type TreeFormatter struct{}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter() *TreeFormatter {
	return &TreeFormatter{}
}

// FormatTree renders a recipe tree with branch characters
func (f *TreeFormatter) FormatTree(root *services.RecipeNode) string {
	if root == nil {
		return "(empty tree)\n"
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

func (f *TreeFormatter) formatNode(builder *strings.Builder, node *services.RecipeNode, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	builder.WriteString(linePrefix)
	builder.WriteString(node.Name)

	if !isRoot {
		builder.WriteString(fmt.Sprintf(" ×%g", node.Coefficient))
	}
	if !node.Producible {
		builder.WriteString(" (raw)")
	}
	if node.Cyclic {
		builder.WriteString(" [cycle]")
	}
	if node.Revisited {
		builder.WriteString(" …")
	}
	builder.WriteString("\n")

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	for i, child := range node.Children {
		f.formatNode(builder, child, childPrefix, i == len(node.Children)-1, false)
	}
}
