package atmos

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// Writer is the external output collaborator (§6): given the current
// elapsed time and the four global cell-centered fields (perturbation
// density, diagnostic u/w winds, potential-temperature perturbation), it
// appends one time slice. The core solver depends only on this interface,
// never on a concrete file format.
type Writer interface {
	WriteSnapshot(etime float64, dens, uwnd, wwnd, theta [][]float64) error
	Close() error
}

// NoopWriter discards every snapshot. It is the writer used when
// output_freq < 0 disables output entirely.
type NoopWriter struct{}

func (NoopWriter) WriteSnapshot(float64, [][]float64, [][]float64, [][]float64, [][]float64) error {
	return nil
}
func (NoopWriter) Close() error { return nil }

// NetCDFWriter appends snapshots to a NetCDF-classic file with an unlimited
// time axis and two spatial axes (z, x), grounded on the source-receptor
// matrix writer's cdf.NewHeader/AddVariable/Create sequence.
type NetCDFWriter struct {
	f    *os.File
	cf   *cdf.File
	nz   int
	nx   int
	recs int
}

// NewNetCDFWriter creates path and defines its header for a (nz, nx) grid,
// or returns an error wrapped for the driver's exit-code contract (§7c).
func NewNetCDFWriter(path string, nz, nx int) (*NetCDFWriter, error) {
	h := cdf.NewHeader(
		[]string{"time", "z", "x"},
		[]int{0, nz, nx},
	)
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "seconds")

	for _, v := range []string{"dens", "uwnd", "wwnd", "theta"} {
		h.AddVariable(v, []string{"time", "z", "x"}, []float64{0})
	}
	h.AddAttribute("dens", "description", "density perturbation from hydrostatic background")
	h.AddAttribute("dens", "units", "kg m-3")
	h.AddAttribute("uwnd", "description", "horizontal wind")
	h.AddAttribute("uwnd", "units", "m s-1")
	h.AddAttribute("wwnd", "description", "vertical wind")
	h.AddAttribute("wwnd", "units", "m s-1")
	h.AddAttribute("theta", "description", "potential temperature perturbation from hydrostatic background")
	h.AddAttribute("theta", "units", "K")
	h.Define()

	if errs := h.Check(); len(errs) > 0 {
		return nil, fmt.Errorf("atmos: invalid netcdf header: %v", errs[0])
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("atmos: creating output file: %w", err)
	}
	cf, err := cdf.Create(f, h)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("atmos: initializing output file: %w", err)
	}
	return &NetCDFWriter{f: f, cf: cf, nz: nz, nx: nx}, nil
}

func (w *NetCDFWriter) WriteSnapshot(etime float64, dens, uwnd, wwnd, theta [][]float64) error {
	rec := w.recs
	if err := w.writeScalarTime(rec, etime); err != nil {
		return err
	}
	for name, field := range map[string][][]float64{
		"dens": dens, "uwnd": uwnd, "wwnd": wwnd, "theta": theta,
	} {
		if err := w.writeField(rec, name, field); err != nil {
			return err
		}
	}
	if err := cdf.UpdateNumRecs(w.f); err != nil {
		return fmt.Errorf("atmos: updating output record count: %w", err)
	}
	w.recs++
	return nil
}

func (w *NetCDFWriter) writeScalarTime(rec int, etime float64) error {
	writer := w.cf.Writer("time", []int{rec}, []int{1})
	_, err := writer.Write([]float64{etime})
	if err != nil {
		return fmt.Errorf("atmos: writing time coordinate: %w", err)
	}
	return nil
}

func (w *NetCDFWriter) writeField(rec int, name string, field [][]float64) error {
	flat := make([]float64, 0, w.nz*w.nx)
	for _, row := range field {
		flat = append(flat, row...)
	}
	writer := w.cf.Writer(name, []int{rec, 0, 0}, []int{rec + 1, w.nz, w.nx})
	if _, err := writer.Write(flat); err != nil {
		return fmt.Errorf("atmos: writing variable %s: %w", name, err)
	}
	return nil
}

func (w *NetCDFWriter) Close() error {
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("atmos: closing output file: %w", err)
	}
	return nil
}
