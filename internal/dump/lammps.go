// Package dump writes trajectory frames in the LAMMPS custom dump format,
// readable by OVITO and other visualization tools.
package dump

import (
	"bufio"
	"fmt"
	"os"

	"github.com/san-kum/langevin/internal/md"
)

var axisNames = []string{"x", "y", "z"}

// Writer appends trajectory frames to a single dump file. Output is buffered
// and flushed once per frame, so a frame is written as one block.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// NewWriter creates the dump file at path, truncating any previous run's
// output.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteFrame appends one frame: header block followed by a row per particle
// with columns id, radius, position axes, velocity axes. Vector fields are
// split into per-axis columns (position becomes bare axis names, velocity
// becomes v_x, v_y, ...). Values are written in scientific notation.
func (w *Writer) WriteFrame(timestep int, box md.Box, radius []float64, pos, vel md.Vectors) error {
	natoms := len(pos)
	dims := box.Dims()

	fmt.Fprintf(w.w, "ITEM: TIMESTEP\n%d\n", timestep)
	fmt.Fprintf(w.w, "ITEM: NUMBER OF ATOMS\n%d\n", natoms)
	fmt.Fprintf(w.w, "ITEM: BOX BOUNDS pp pp pp\n")
	for _, bounds := range box {
		fmt.Fprintf(w.w, "%g %g\n", bounds[0], bounds[1])
	}

	fmt.Fprintf(w.w, "ITEM: ATOMS id radius")
	for k := 0; k < dims; k++ {
		fmt.Fprintf(w.w, " %s", axisName(k))
	}
	for k := 0; k < dims; k++ {
		fmt.Fprintf(w.w, " v_%s", axisName(k))
	}
	fmt.Fprintln(w.w)

	for i := 0; i < natoms; i++ {
		fmt.Fprintf(w.w, "%d %e", i+1, radius[i])
		for k := 0; k < dims; k++ {
			fmt.Fprintf(w.w, " %e", pos[i][k])
		}
		for k := 0; k < dims; k++ {
			fmt.Fprintf(w.w, " %e", vel[i][k])
		}
		fmt.Fprintln(w.w)
	}

	return w.w.Flush()
}

func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

func axisName(k int) string {
	if k < len(axisNames) {
		return axisNames[k]
	}
	return fmt.Sprintf("x%d", k)
}
