package tensor

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		shape   []int
		dataLen int
		wantErr bool
	}{
		{"rank3", []int{2, 3, 3}, 18, false},
		{"rank4", []int{2, 2, 2, 4}, 32, false},
		{"empty batch", []int{0, 4, 4, 3}, 0, false},
		{"empty shape", nil, 0, true},
		{"negative dimension", []int{-1, 4, 3}, 12, true},
		{"data too short", []int{2, 2, 3}, 11, true},
		{"data too long", []int{2, 2, 3}, 13, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.shape, make([]float32, tt.dataLen))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%v) error = nil, want error", tt.shape)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%v) error = %v", tt.shape, err)
			}
			if tr.Rank() != len(tt.shape) {
				t.Errorf("Rank() = %d, want %d", tr.Rank(), len(tt.shape))
			}
			if tr.Len() != tt.dataLen {
				t.Errorf("Len() = %d, want %d", tr.Len(), tt.dataLen)
			}
		})
	}
}

func TestTensor_At(t *testing.T) {
	// Shape [2][2][3]: values numbered in row-major order.
	data := make([]float32, 12)
	for i := range data {
		data[i] = float32(i)
	}
	tr, err := New([]int{2, 2, 3}, data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := tr.At(0, 0, 0); got != 0 {
		t.Errorf("At(0,0,0) = %v, want 0", got)
	}
	if got := tr.At(0, 1, 2); got != 5 {
		t.Errorf("At(0,1,2) = %v, want 5", got)
	}
	if got := tr.At(1, 0, 1); got != 7 {
		t.Errorf("At(1,0,1) = %v, want 7", got)
	}
	if got := tr.At(1, 1, 2); got != 11 {
		t.Errorf("At(1,1,2) = %v, want 11", got)
	}
}

func TestTensor_At_Panics(t *testing.T) {
	tr, err := New([]int{2, 2, 3}, make([]float32, 12))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name string
		idx  []int
	}{
		{"wrong arity", []int{0, 0}},
		{"out of range", []int{2, 0, 0}},
		{"negative", []int{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%v) did not panic", tt.idx)
				}
			}()
			tr.At(tt.idx...)
		})
	}
}

func TestTensor_ShapeIsCopy(t *testing.T) {
	tr, err := New([]int{1, 2, 3}, make([]float32, 6))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := tr.Shape()
	s[0] = 99
	if got := tr.Shape()[0]; got != 1 {
		t.Errorf("Shape()[0] after caller mutation = %d, want 1", got)
	}
}

func TestTensor_HostTensor(t *testing.T) {
	tr, err := New([]int{1, 1, 3}, []float32{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	host, err := tr.HostTensor()
	if err != nil {
		t.Fatalf("HostTensor() error = %v", err)
	}
	if host != tr {
		t.Error("HostTensor() should return the receiver for host-resident tensors")
	}
}
