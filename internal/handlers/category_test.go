package handlers

import "testing"

func TestCategoryDeletable(t *testing.T) {
	tests := []struct {
		name                string
		referencingProducts int64
		want                bool
	}{
		{"unreferenced category can be removed", 0, true},
		{"single referencing product blocks removal", 1, false},
		{"many referencing products block removal", 42, false},
	}

	for _, tt := range tests {
		if got := categoryDeletable(tt.referencingProducts); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
