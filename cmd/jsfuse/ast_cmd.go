package main

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/jsfuse"
	"github.com/deepnoodle-ai/jsfuse/ast"
)

func (a *app) astCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runAST,
	}
	addInputFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", "text", "output format: json or text")
	cmd.Flags().Bool("optimize", false, "print the tree after rewriting")
	return cmd
}

func (a *app) runAST(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var program *ast.Program
	if optimize, _ := cmd.Flags().GetBool("optimize"); optimize {
		result, err := jsfuse.Optimize(cmd.Context(), in.source,
			jsfuse.WithFilename(in.path),
			jsfuse.WithNames(a.cfg.Names))
		if err != nil {
			return err
		}
		program = result.Program
	} else {
		program, err = jsfuse.Parse(cmd.Context(), in.source, jsfuse.WithFilename(in.path))
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	colored := !a.cfg.NoColor && isTerminal(out)
	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "json":
		data, err := marshalAST(program, colored)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "text":
		printAST(out, program)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// ASTNode represents a node in the JSON AST output.
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func marshalAST(program *ast.Program, colored bool) ([]byte, error) {
	root := nodeToJSON(program)
	if colored {
		return prettyjson.Marshal(root)
	}
	return json.MarshalIndent(root, "", "  ")
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return nil
	}
	result := &ASTNode{Type: reflect.TypeOf(node).Elem().Name()}
	add := func(children ...ast.Node) {
		for _, child := range children {
			if n := nodeToJSON(child); n != nil {
				result.Children = append(result.Children, n)
			}
		}
	}
	labeled := func(label string, child ast.Node) {
		if n := nodeToJSON(child); n != nil {
			result.Children = append(result.Children, &ASTNode{
				Type:     label,
				Children: []*ASTNode{n},
			})
		}
	}

	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Stmts {
			add(stmt)
		}
	case *ast.Block:
		for _, stmt := range n.Stmts {
			add(stmt)
		}

	case *ast.VarDecl:
		result.Value = n.Kind
		for _, d := range n.Decls {
			decl := &ASTNode{Type: "Declarator", Value: d.Name.Name}
			if v := nodeToJSON(d.Value); v != nil {
				decl.Children = []*ASTNode{v}
			}
			result.Children = append(result.Children, decl)
		}
	case *ast.Return:
		add(n.Value)
	case *ast.ExprStmt:
		add(n.X)
	case *ast.Throw:
		add(n.Value)
	case *ast.If:
		labeled("Condition", n.Cond)
		labeled("Then", n.Then)
		labeled("Else", n.Else)
	case *ast.While:
		labeled("Condition", n.Cond)
		labeled("Body", n.Body)
	case *ast.DoWhile:
		labeled("Body", n.Body)
		labeled("Condition", n.Cond)
	case *ast.For:
		labeled("Init", n.Init)
		labeled("Condition", n.Cond)
		labeled("Post", n.Post)
		labeled("Body", n.Body)
	case *ast.ForIn:
		labeled("Init", n.Init)
		labeled("Object", n.X)
		labeled("Body", n.Body)
	case *ast.Labeled:
		result.Value = n.Label.Name
		add(n.Body)
	case *ast.Break:
		if n.Label != nil {
			result.Value = n.Label.Name
		}
	case *ast.Continue:
		if n.Label != nil {
			result.Value = n.Label.Name
		}
	case *ast.Switch:
		labeled("Tag", n.Tag)
		for _, c := range n.Cases {
			add(c)
		}
	case *ast.Case:
		if n.Test == nil {
			result.Type = "Default"
		}
		add(n.Test)
		for _, stmt := range n.Body {
			add(stmt)
		}
	case *ast.Try:
		add(n.Block)
		if n.Catch != nil {
			catch := &ASTNode{Type: "Catch"}
			if n.Param != nil {
				catch.Value = n.Param.Name
			}
			if body := nodeToJSON(n.Catch); body != nil {
				catch.Children = []*ASTNode{body}
			}
			result.Children = append(result.Children, catch)
		}
		labeled("Finally", n.Finally)
	case *ast.Comment:
		result.Value = n.Text

	case *ast.Ident:
		result.Value = n.Name
	case *ast.Number:
		result.Value = n.Literal
	case *ast.String:
		result.Value = n.Literal
	case *ast.Regexp:
		result.Value = n.Literal
	case *ast.Bool:
		result.Value = n.Value
	case *ast.Call:
		add(n.Fun)
		for _, arg := range n.Args {
			add(arg)
		}
	case *ast.New:
		add(n.Fun)
		for _, arg := range n.Args {
			add(arg)
		}
	case *ast.Member:
		result.Value = n.Sel.Name
		add(n.X)
	case *ast.Index:
		add(n.X, n.Index)
	case *ast.Prefix:
		result.Value = n.Op
		add(n.X)
	case *ast.Infix:
		result.Value = n.Op
		add(n.X, n.Y)
	case *ast.Assign:
		result.Value = n.Op
		add(n.X, n.Value)
	case *ast.Cond:
		add(n.Cond, n.Then, n.Else)
	case *ast.Update:
		result.Value = n.Op
		if !n.Prefix {
			result.Value = "postfix " + n.Op
		}
		add(n.X)
	case *ast.Sequence:
		for _, x := range n.List {
			add(x)
		}
	case *ast.Array:
		for _, item := range n.Items {
			add(item)
		}
	case *ast.Object:
		for _, prop := range n.Props {
			p := &ASTNode{Type: "Property", Value: prop.Key}
			if v := nodeToJSON(prop.Value); v != nil {
				p.Children = []*ASTNode{v}
			}
			result.Children = append(result.Children, p)
		}
	case *ast.Func:
		if n.Name != nil {
			result.Value = n.Name.Name
		}
		if len(n.Params) > 0 {
			params := &ASTNode{Type: "Params"}
			for _, param := range n.Params {
				params.Children = append(params.Children, nodeToJSON(param))
			}
			result.Children = append(result.Children, params)
		}
		add(n.Body)
	}
	return result
}

// Color styles for AST display
var (
	nodeStyle    = color.New(color.FgCyan, color.Bold)
	literalStyle = color.New(color.FgYellow)
	mutedStyle   = color.New(color.FgHiBlack)
)

func printAST(w io.Writer, program *ast.Program) {
	root := nodeToJSON(program)
	fmt.Fprintln(w, nodeStyle.Sprint(root.Type))
	for i, child := range root.Children {
		printNode(w, child, "  ", i == len(root.Children)-1)
	}
}

func printNode(w io.Writer, node *ASTNode, indent string, isLast bool) {
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	line := mutedStyle.Sprint(indent+connector) + nodeStyle.Sprint(node.Type)
	switch v := node.Value.(type) {
	case nil:
	case string:
		line += literalStyle.Sprintf(" %s", v)
	default:
		line += literalStyle.Sprintf(" %v", v)
	}
	fmt.Fprintln(w, line)
	for i, child := range node.Children {
		printNode(w, child, childIndent, i == len(node.Children)-1)
	}
}
