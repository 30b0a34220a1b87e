package stack

import (
	"testing"
)

func TestStack_New(t *testing.T) {
	s := New[int]()

	if !s.IsEmpty() {
		t.Error("New() stack should be empty")
	}

	if s.Size() != 0 {
		t.Errorf("New() stack size = %d, want 0", s.Size())
	}
}

func TestStack_NewWithCapacity(t *testing.T) {
	s := NewWithCapacity[string](10)

	if !s.IsEmpty() {
		t.Error("NewWithCapacity() stack should be empty")
	}

	if s.Size() != 0 {
		t.Errorf("NewWithCapacity() stack size = %d, want 0", s.Size())
	}
}

func TestStack_ZeroValue(t *testing.T) {
	var s Stack[int]

	s.Push(7)

	val, ok := s.Pop()
	if !ok || val != 7 {
		t.Errorf("Pop() on zero value stack = %d, %t, want 7, true", val, ok)
	}
}

func TestStack_PushAndPop(t *testing.T) {
	s := New[int]()

	s.Push(1)
	s.Push(2)
	s.Push(3)

	if s.Size() != 3 {
		t.Errorf("Push() stack size = %d, want 3", s.Size())
	}

	// LIFO order
	for _, want := range []int{3, 2, 1} {
		val, ok := s.Pop()
		if !ok || val != want {
			t.Errorf("Pop() = %d, %t, want %d, true", val, ok, want)
		}
	}

	val, ok := s.Pop()
	if ok || val != 0 {
		t.Errorf("Pop() from empty stack = %d, %t, want 0, false", val, ok)
	}

	if !s.IsEmpty() {
		t.Error("Pop() stack should be empty after popping all elements")
	}
}

func TestStack_Peek(t *testing.T) {
	s := New[string]()

	val, ok := s.Peek()
	if ok || val != "" {
		t.Errorf("Peek() on empty stack = %q, %t, want \"\", false", val, ok)
	}

	s.Push("first", "second")

	val, ok = s.Peek()
	if !ok || val != "second" {
		t.Errorf("Peek() = %q, %t, want \"second\", true", val, ok)
	}

	if s.Size() != 2 {
		t.Errorf("Peek() changed stack size to %d, want 2", s.Size())
	}
}

func TestStack_PeekRef(t *testing.T) {
	s := New[int]()

	if ref := s.PeekRef(); ref != nil {
		t.Error("PeekRef() on empty stack should return nil")
	}

	s.Push(42, 100)

	ref := s.PeekRef()
	if ref == nil {
		t.Fatal("PeekRef() should not return nil for non-empty stack")
	}

	*ref = 200

	val, _ := s.Peek()
	if val != 200 {
		t.Errorf("After modifying through PeekRef(), top element = %d, want 200", val)
	}
}

func TestStack_At(t *testing.T) {
	s := New[string]()
	s.Push("root", "child", "leaf")

	tests := []struct {
		index  int
		want   string
		wantOK bool
	}{
		{index: 0, want: "root", wantOK: true},
		{index: 2, want: "leaf", wantOK: true},
		{index: 3, want: "", wantOK: false},
		{index: -1, want: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := s.At(tt.index)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("At(%d) = %q, %t, want %q, %t", tt.index, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStack_Reset(t *testing.T) {
	s := NewWithCapacity[*int](4)
	a, b := 1, 2
	s.Push(&a, &b)

	s.Reset()

	if !s.IsEmpty() {
		t.Errorf("Reset() stack size = %d, want 0", s.Size())
	}

	s.Push(&b)
	val, ok := s.Peek()
	if !ok || val != &b {
		t.Errorf("Peek() after Reset() and Push() = %p, %t, want %p, true", val, ok, &b)
	}
}

func TestStack_GenericTypes(t *testing.T) {
	type TestStruct struct {
		Name string
		ID   int
	}

	s := New[TestStruct]()
	s.Push(TestStruct{Name: "first", ID: 1})
	s.Push(TestStruct{Name: "second", ID: 2})

	val, ok := s.Pop()
	if !ok || val.Name != "second" || val.ID != 2 {
		t.Errorf("Pop() = %+v, %t, want {Name:second ID:2}, true", val, ok)
	}
}
