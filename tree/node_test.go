package tree

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAndIsolate(t *testing.T) {
	root := NewNode("root")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	root.AddChild(a).AddChild(c)
	root.InsertChildAt(1, b)
	if root.ChildCount() != 3 {
		t.Fatalf("expected 3 children, have %d", root.ChildCount())
	}
	if ch, _ := root.Child(1); ch != b {
		t.Errorf("expected b at position 1, is %v", ch)
	}
	if a.NextSibling() != b || c.NextSibling() != nil {
		t.Errorf("sibling links broken")
	}
	b.Isolate()
	assert.Nil(t, b.Parent())
	assert.Equal(t, []*Node[string]{a, c}, root.Children())
	assert.Equal(t, 1, root.IndexOfChild(c))
	if _, ok := root.Child(5); ok {
		t.Errorf("expected no child at position 5")
	}
}

func TestWalk(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	root.AddChild(a).AddChild(b)
	a.AddChild(NewNode("a1"))
	b.AddChild(NewNode("b1"))
	var visited []string
	root.Walk(func(n *Node[string]) bool {
		visited = append(visited, n.Payload)
		return n.Payload != "b"
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, visited)
}

func TestConcurrentReaders(t *testing.T) {
	root := NewNode(0)
	for i := 1; i <= 10; i++ {
		root.AddChild(NewNode(i))
	}
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sum := 0
			for _, ch := range root.Children() {
				sum += ch.Payload
			}
			if sum != 55 {
				t.Errorf("expected sum 55, is %d", sum)
			}
		}()
	}
	wg.Wait()
}
