package ast

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of the subtree at id for debugging.
// Nodes carrying a diagnostic are suffixed with `!! message`.
func Print(t *Tree, id NodeID) string {
	var sb strings.Builder
	printNode(&sb, t, id, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, t *Tree, id NodeID, indent int) {
	node := t.Node(id)
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	suffix := ""
	if d := node.meta().Diag; d != nil {
		suffix = "  !! " + d.Message
	}

	switch n := node.(type) {
	case *Stylesheet:
		sb.WriteString(prefix + "Stylesheet" + suffix + "\n")
		for _, child := range n.Body {
			printNode(sb, t, child, indent+1)
		}

	case *Stylerule:
		sb.WriteString(prefix + "Stylerule" + suffix + "\n")
		for _, sel := range n.Selectors {
			printNode(sb, t, sel, indent+1)
		}
		for _, child := range n.Body {
			printNode(sb, t, child, indent+1)
		}

	case *Selector:
		kind := "Tag"
		switch n.Kind {
		case ClassSelector:
			kind = "Class"
		case IDSelector:
			kind = "Id"
		}
		sb.WriteString(fmt.Sprintf("%s%sSelector: %s%s\n", prefix, kind, n.Text, suffix))

	case *Declaration:
		sb.WriteString(prefix + "Declaration" + suffix + "\n")
		printNode(sb, t, n.Property, indent+1)
		printNode(sb, t, n.Expr, indent+1)

	case *PropertyName:
		sb.WriteString(fmt.Sprintf("%sProperty: %s%s\n", prefix, n.Name, suffix))

	case *VariableAssignment:
		sb.WriteString(prefix + "VariableAssignment" + suffix + "\n")
		printNode(sb, t, n.Name, indent+1)
		printNode(sb, t, n.Expr, indent+1)

	case *IfClause:
		sb.WriteString(prefix + "IfClause" + suffix + "\n")
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, t, n.Cond, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		for _, child := range n.Body {
			printNode(sb, t, child, indent+2)
		}
		printNode(sb, t, n.Else, indent+1)

	case *ElseClause:
		sb.WriteString(prefix + "ElseClause" + suffix + "\n")
		for _, child := range n.Body {
			printNode(sb, t, child, indent+1)
		}

	case *VariableReference:
		sb.WriteString(fmt.Sprintf("%sVariableReference: %s%s\n", prefix, n.Name, suffix))

	case *AddOperation:
		sb.WriteString(prefix + "AddOperation" + suffix + "\n")
		printNode(sb, t, n.LHS, indent+1)
		printNode(sb, t, n.RHS, indent+1)

	case *SubtractOperation:
		sb.WriteString(prefix + "SubtractOperation" + suffix + "\n")
		printNode(sb, t, n.LHS, indent+1)
		printNode(sb, t, n.RHS, indent+1)

	case *MultiplyOperation:
		sb.WriteString(prefix + "MultiplyOperation" + suffix + "\n")
		printNode(sb, t, n.LHS, indent+1)
		printNode(sb, t, n.RHS, indent+1)

	case Literal:
		sb.WriteString(fmt.Sprintf("%s%sLiteral: %s%s\n", prefix, n.LiteralKind(), FormatLiteral(n), suffix))

	default:
		sb.WriteString(fmt.Sprintf("%sUnknown node type: %T\n", prefix, node))
	}
}
