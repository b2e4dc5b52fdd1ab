package model

import "encoding/json"

// RootName is the label of the hierarchy root.
const RootName = "All Countries"

// Sentiment is the bucket a row falls into for a given text field.
type Sentiment string

const (
	Negative Sentiment = "Negative"
	Neutral  Sentiment = "Neutral"
	Positive Sentiment = "Positive"
)

// Sentiments is the fixed child order of every category node.
var Sentiments = []Sentiment{Negative, Neutral, Positive}

// AggregationNode is one node of the country → category → sentiment tree.
// Only leaves carry a count; inner nodes derive theirs from their children.
type AggregationNode struct {
	Name      string
	Children  []*AggregationNode
	Count     int
	ExtraText string
	leaf      bool
}

// NewLeaf builds a sentiment-bucket node.
func NewLeaf(name string, count int, extraText string) *AggregationNode {
	return &AggregationNode{Name: name, Count: count, ExtraText: extraText, leaf: true}
}

// NewBranch builds an inner node with an empty, non-nil child list.
func NewBranch(name string) *AggregationNode {
	return &AggregationNode{Name: name, Children: []*AggregationNode{}}
}

// IsLeaf reports whether n is a sentiment bucket.
func (n *AggregationNode) IsLeaf() bool {
	return n.leaf
}

// Value is the number of rows under n.
func (n *AggregationNode) Value() int {
	if n.leaf {
		return n.Count
	}
	total := 0
	for _, c := range n.Children {
		total += c.Value()
	}
	return total
}

// Child returns the direct child with the given name, or nil.
func (n *AggregationNode) Child(name string) *AggregationNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find walks down the tree by child names. An empty path returns n itself.
func (n *AggregationNode) Find(path ...string) *AggregationNode {
	cur := n
	for _, name := range path {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Leaves returns every leaf under n in tree order.
func (n *AggregationNode) Leaves() []*AggregationNode {
	if n.leaf {
		return []*AggregationNode{n}
	}
	var out []*AggregationNode
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

type branchJSON struct {
	Name     string             `json:"name"`
	Children []*AggregationNode `json:"children"`
}

type leafJSON struct {
	Name      string `json:"name"`
	Value     int    `json:"value"`
	ExtraText string `json:"extraText,omitempty"`
}

// MarshalJSON writes leaves as {name,value,extraText} and inner nodes as
// {name,children}, the shape hierarchy renderers expect.
func (n *AggregationNode) MarshalJSON() ([]byte, error) {
	if n.leaf {
		return json.Marshal(leafJSON{Name: n.Name, Value: n.Count, ExtraText: n.ExtraText})
	}
	children := n.Children
	if children == nil {
		children = []*AggregationNode{}
	}
	return json.Marshal(branchJSON{Name: n.Name, Children: children})
}

// UnmarshalJSON treats any object carrying a "children" key as an inner node.
func (n *AggregationNode) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if _, ok := fields["children"]; ok {
		var b branchJSON
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*n = *NewBranch(b.Name)
		if b.Children != nil {
			n.Children = b.Children
		}
		return nil
	}
	var l leafJSON
	if err := json.Unmarshal(data, &l); err != nil {
		return err
	}
	*n = *NewLeaf(l.Name, l.Value, l.ExtraText)
	return nil
}
