// Package tree parses newick trees written by raxml-ng, where labels of
// internal nodes are branch supports.
package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("tree")

// maxLine is the longest tree line ReadTrees accepts.
const maxLine = 64 * 1024 * 1024

type mode int

const (
	normal mode = iota
	length
)

type Tree struct {
	*Node
	nNodes int
}

// NNodes returns the number of nodes including the root.
func (tree *Tree) NNodes() int {
	if tree.nNodes == 0 {
		tree.nNodes = tree.NSubNodes()
	}
	return tree.nNodes
}

// Terminals returns a channel with all the leaves.
func (tree *Tree) Terminals() <-chan *Node {
	return tree.Walker(func(node *Node) bool {
		return node.IsTerminal()
	})
}

func (tree *Tree) NLeaves() (i int) {
	for range tree.Terminals() {
		i++
	}
	return
}

// LeafNames returns names of the leaves in the textual order.
func (tree *Tree) LeafNames() []string {
	names := make([]string, 0, tree.NNodes())
	for node := range tree.Terminals() {
		names = append(names, node.Name)
	}
	return names
}

// Walker returns a channel with the nodes in pre-order, filtered by
// filter (all the nodes if filter is nil).
func (tree *Tree) Walker(filter func(*Node) bool) <-chan *Node {
	ch := make(chan *Node, tree.NNodes())
	tree.Walk(ch, filter)
	close(ch)
	return ch
}

// Supports returns supports of the internal nodes in the order they are
// written, i.e. children before parents.
func (tree *Tree) Supports() (supports []float64) {
	tree.postOrder(func(node *Node) {
		if node.HasSupport {
			supports = append(supports, node.Support)
		}
	})
	return
}

type Node struct {
	Name         string
	BranchLength float64
	// Support is the label of an internal node, valid if HasSupport.
	Support    float64
	HasSupport bool
	Parent     *Node
	childNodes []*Node
	ID         int
}

func NewNode(parent *Node, nodeID int) (node *Node) {
	node = &Node{Parent: parent, ID: nodeID}
	return
}

func (node *Node) AddChild(subNode *Node) {
	subNode.Parent = node
	node.childNodes = append(node.childNodes, subNode)
}

func (node *Node) ChildNodes() []*Node {
	return node.childNodes
}

// String returns the subtree in newick format with supports and branch
// lengths.
func (node *Node) String() (s string) {
	if node.IsTerminal() {
		return fmt.Sprintf("%s:%0.6f", node.Name, node.BranchLength)
	}
	s += "("
	for i, child := range node.childNodes {
		s += child.String()
		if i != len(node.childNodes)-1 {
			s += ","
		}
	}
	s += ")"
	if node.HasSupport {
		s += strconv.FormatFloat(node.Support, 'f', -1, 64)
	} else {
		s += node.Name
	}
	if node.IsRoot() {
		return s + ";"
	}
	return s + fmt.Sprintf(":%0.6f", node.BranchLength)
}

func (node *Node) Walk(ch chan *Node, filter func(*Node) bool) {
	if filter == nil || filter(node) {
		ch <- node
	}
	for _, node := range node.childNodes {
		node.Walk(ch, filter)
	}
}

func (node *Node) postOrder(f func(*Node)) {
	for _, child := range node.childNodes {
		child.postOrder(f)
	}
	f(node)
}

func (node *Node) NSubNodes() (size int) {
	for _, node := range node.childNodes {
		size += node.NSubNodes()
	}
	return size + 1
}

func (node *Node) IsRoot() bool {
	return node.Parent == nil
}

func (node *Node) IsTerminal() bool {
	return len(node.childNodes) == 0
}

// setLabel sets a node label. Numeric labels of internal nodes are
// supports.
func (node *Node) setLabel(text string) {
	if !node.IsTerminal() {
		if s, err := strconv.ParseFloat(text, 64); err == nil {
			node.Support = s
			node.HasSupport = true
			return
		}
	}
	node.Name = text
}

func IsSpecial(c rune) bool {
	switch c {
	case '(', ')', ':', ';', ',':
		return true
	}
	return false
}

// NewickSplit is a bufio.SplitFunc returning newick tokens.
func NewickSplit(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	// Skip leading spaces; and return 1-char tokens.
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if IsSpecial(r) {
			return start + width, data[start : start+width], nil
		}
		if !unicode.IsSpace(r) {
			break
		}
	}
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	// Scan until space or special character.
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if unicode.IsSpace(r) || IsSpecial(r) {
			return i, data[start:i], nil
		}
	}
	// If we're at EOF, we have a final, non-empty, non-terminated word. Return it.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Request more data.
	return 0, nil, nil
}

// ParseNewick parses a single tree, reading stops at the first ';'.
func ParseNewick(rd io.Reader) (tree *Tree, err error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	scanner.Split(NewickSplit)

	nodeID := 0

	node := NewNode(nil, nodeID)
	tree = &Tree{Node: node}
	nodeID++

	m := normal

	for scanner.Scan() {
		text := scanner.Text()
		switch text {
		case "(":
			subNode := NewNode(nil, nodeID)
			nodeID++
			node.AddChild(subNode)
			node = subNode

		case ",":
			if node.Parent == nil {
				return nil, errors.New("top level comma mismatch")
			}
			subNode := NewNode(nil, nodeID)
			nodeID++

			node.Parent.AddChild(subNode)
			node = subNode

		case ")":
			if node.Parent == nil {
				return nil, errors.New("brackets mismatch")
			}
			node = node.Parent
		case ":":
			m = length
		case ";":
			if node.Parent != nil {
				return nil, errors.New("unclosed bracket")
			}
			return
		default:
			switch m {
			case length:
				l, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return nil, err
				}
				node.BranchLength = l
				m = normal
			default:
				node.setLabel(text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New("tree is not terminated with ';'")
}

// ParseNewickString parses a tree from a string.
func ParseNewickString(s string) (*Tree, error) {
	return ParseNewick(strings.NewReader(s))
}

// ReadTrees reads a tree set, one tree per line. Empty lines are skipped.
func ReadTrees(rd io.Reader) (trees []*Tree, err error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := ParseNewickString(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		trees = append(trees, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Debugf("read %d trees", len(trees))
	return trees, nil
}
