package graph

import (
	"testing"
)

func TestIndex_AscendingPositions(t *testing.T) {
	g := Build([]Edge[string]{
		{From: "diane", To: "bob"},
		{From: "charlie", To: "alice"},
	})
	idx := NewIndex(g)

	want := []string{"alice", "bob", "charlie", "diane"}
	if idx.Len() != len(want) {
		t.Fatalf("Expected %d positions, got %d", len(want), idx.Len())
	}
	for i, id := range want {
		if idx.ID(i) != id {
			t.Errorf("ID(%d) = %s, want %s", i, idx.ID(i), id)
		}
		pos, ok := idx.Position(id)
		if !ok || pos != i {
			t.Errorf("Position(%s) = %d,%v, want %d,true", id, pos, ok, i)
		}
	}
	if _, ok := idx.Position("parisa"); ok {
		t.Error("Expected parisa to be absent from index")
	}

	zipped := idx.Zip([]float64{1, 2, 3, 4})
	if zipped["charlie"] != 3 {
		t.Errorf("Zip mapped charlie to %f, want 3", zipped["charlie"])
	}
}

func TestAdjacency_MatchesWeights(t *testing.T) {
	g := Build([]Edge[int64]{
		{From: 1, To: 2}, {From: 1, To: 2}, {From: 1, To: 3},
		{From: 3, To: 1},
		{From: 4, To: 2},
	})
	idx := NewIndex(g)
	m := NewAdjacency(g, idx)

	if m.Dim() != 4 {
		t.Fatalf("Expected dim 4, got %d", m.Dim())
	}
	if m.NonZero() != 4 {
		t.Errorf("Expected 4 non-zero entries, got %d", m.NonZero())
	}
	for i := 0; i < idx.Len(); i++ {
		for j := 0; j < idx.Len(); j++ {
			want := float64(g.Weight(idx.ID(i), idx.ID(j)))
			if got := m.At(i, j); got != want {
				t.Errorf("M[%d][%d] = %f, want %f", i, j, got, want)
			}
		}
	}
}

func TestAdjacency_Products(t *testing.T) {
	// Positions: 1->0, 2->1, 3->2
	// M = [[0 2 1]
	//      [0 0 0]
	//      [3 0 0]]
	g := Build([]Edge[int64]{
		{From: 1, To: 2}, {From: 1, To: 2}, {From: 1, To: 3},
		{From: 3, To: 1}, {From: 3, To: 1}, {From: 3, To: 1},
	})
	m := NewAdjacency(g, NewIndex(g))

	x := []float64{1, 10, 100}
	left := make([]float64, 3)
	m.MulLeft(left, x)
	// x·M = [100*3, 1*2, 1*1]
	wantLeft := []float64{300, 2, 1}
	for i := range wantLeft {
		if left[i] != wantLeft[i] {
			t.Errorf("x·M[%d] = %f, want %f", i, left[i], wantLeft[i])
		}
	}

	right := make([]float64, 3)
	m.MulRight(right, x)
	// M·x = [2*10 + 1*100, 0, 3*1]
	wantRight := []float64{120, 0, 3}
	for i := range wantRight {
		if right[i] != wantRight[i] {
			t.Errorf("M·x[%d] = %f, want %f", i, right[i], wantRight[i])
		}
	}
}

func TestAdjacency_Empty(t *testing.T) {
	g := Build[int64](nil)
	m := NewAdjacency(g, NewIndex(g))

	if m.Dim() != 0 || m.NonZero() != 0 {
		t.Errorf("Expected empty matrix, got dim %d nnz %d", m.Dim(), m.NonZero())
	}
	m.MulLeft(nil, nil)
	m.MulRight(nil, nil)
}
