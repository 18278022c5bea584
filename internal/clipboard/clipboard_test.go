package clipboard

import "testing"

func TestMemory(t *testing.T) {
	var m Memory
	if err := m.WriteAll("Décret n°24-15"); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if got := m.Text(); got != "Décret n°24-15" {
		t.Errorf("Text() = %q", got)
	}
}

func TestDefaultNeverNil(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default returned nil")
	}
}
