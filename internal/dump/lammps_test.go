package dump

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/langevin/internal/md"
)

func writeTwoFrames(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traj.dump")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer w.Close()

	box := md.CubicBox(3, 1e-8)
	radius := []float64{1e-10, 1e-10}
	pos := md.Vectors{{1e-9, 2e-9, 3e-9}, {4e-9, 5e-9, 6e-9}}
	vel := md.Vectors{{100, -200, 300}, {-50, 60, -70}}

	if err := w.WriteFrame(100, box, radius, pos, vel); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if err := w.WriteFrame(200, box, radius, pos, vel); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	return path
}

func TestWriteFrame_Format(t *testing.T) {
	path := writeTwoFrames(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	// Each block: TIMESTEP(2) + NATOMS(2) + BOX(1+3) + header(1) + 2 rows = 11
	if len(lines) != 22 {
		t.Fatalf("expected 22 lines, got %d", len(lines))
	}

	if lines[0] != "ITEM: TIMESTEP" || lines[1] != "100" {
		t.Errorf("bad timestep block: %q %q", lines[0], lines[1])
	}
	if lines[2] != "ITEM: NUMBER OF ATOMS" || lines[3] != "2" {
		t.Errorf("bad atom count block: %q %q", lines[2], lines[3])
	}
	if lines[4] != "ITEM: BOX BOUNDS pp pp pp" {
		t.Errorf("bad box header: %q", lines[4])
	}
	for i := 5; i < 8; i++ {
		fields := strings.Fields(lines[i])
		if len(fields) != 2 {
			t.Errorf("box bounds line %d: %q", i, lines[i])
		}
	}
	if lines[8] != "ITEM: ATOMS id radius x y z v_x v_y v_z" {
		t.Errorf("bad column header: %q", lines[8])
	}

	// Second frame starts right after the first.
	if lines[11] != "ITEM: TIMESTEP" || lines[12] != "200" {
		t.Errorf("second frame not appended: %q %q", lines[11], lines[12])
	}
}

func TestWriteFrame_Rows(t *testing.T) {
	path := writeTwoFrames(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")

	for row, line := range lines[9:11] {
		fields := strings.Fields(line)
		if len(fields) != 8 {
			t.Fatalf("row %d: expected 8 columns, got %d (%q)", row, len(fields), line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id != row+1 {
			t.Errorf("row %d: id = %q, want %d", row, fields[0], row+1)
		}
		for _, f := range fields[1:] {
			if !strings.ContainsAny(f, "eE") {
				t.Errorf("value %q not in scientific notation", f)
			}
			if _, err := strconv.ParseFloat(f, 64); err != nil {
				t.Errorf("value %q does not parse: %v", f, err)
			}
		}
	}
}

func TestNewWriter_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.dump")
	if err := os.WriteFile(path, []byte("stale data\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	w.Close()

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Errorf("expected truncated file, got %q", data)
	}
}
