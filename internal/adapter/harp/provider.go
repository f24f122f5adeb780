// Package harp reads HARP-convention NetCDF products.
package harp

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// Provider implements domain.Provider on top of the NetCDF C library.
type Provider struct {
	logger *slog.Logger
}

// NewProvider creates a NetCDF-backed product provider.
func NewProvider(logger *slog.Logger) *Provider {
	return &Provider{logger: logger}
}

// ImportProduct opens a merged L3 product and extracts the latitude,
// longitude and time-boundary variables plus the named observation
// variable. Any open or read failure wraps domain.ErrDataUnavailable.
func (p *Provider) ImportProduct(path, obsVar string) (domain.Product, error) {
	p.logger.Debug("reading product file", "path", path)

	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("%w: open product %s: %v", domain.ErrDataUnavailable, path, err)
	}
	defer nc.Close()

	product := make(domain.Product)
	names := []string{
		domain.VarLatitude,
		domain.VarLongitude,
		domain.VarDatetimeStart,
		domain.VarDatetimeStop,
		obsVar,
	}
	for _, name := range names {
		v, err := readVariable(nc, name)
		if err != nil {
			return nil, fmt.Errorf("%w: read %q from %s: %v", domain.ErrDataUnavailable, name, path, err)
		}
		product[name] = v
	}
	return product, nil
}

// readVariable extracts one variable with its shape and, when present,
// its description and unit attributes.
func readVariable(nc netcdf.Dataset, name string) (domain.Variable, error) {
	v, err := nc.Var(name)
	if err != nil {
		return domain.Variable{}, fmt.Errorf("variable not found: %v", err)
	}

	dims, err := v.Dims()
	if err != nil {
		return domain.Variable{}, fmt.Errorf("get dimensions: %v", err)
	}
	shape := make([]int, len(dims))
	total := 1
	for i, d := range dims {
		n, err := d.Len()
		if err != nil {
			return domain.Variable{}, fmt.Errorf("get dimension length: %v", err)
		}
		shape[i] = int(n)
		total *= int(n)
	}

	data, err := readFloat64s(v, total)
	if err != nil {
		return domain.Variable{}, err
	}

	return domain.Variable{
		Data:        data,
		Shape:       shape,
		Description: textAttr(v, "description"),
		Unit:        firstTextAttr(v, "units", "unit"),
	}, nil
}

// readFloat64s reads the whole variable as float64, converting from the
// stored numeric type.
func readFloat64s(v netcdf.Var, total int) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("get type: %v", err)
	}

	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, total)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, fmt.Errorf("read float64: %v", err)
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, total)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, fmt.Errorf("read float32: %v", err)
		}
		data := make([]float64, total)
		for i, val := range tmp {
			data[i] = float64(val)
		}
		return data, nil
	case netcdf.INT:
		tmp := make([]int32, total)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, fmt.Errorf("read int32: %v", err)
		}
		data := make([]float64, total)
		for i, val := range tmp {
			data[i] = float64(val)
		}
		return data, nil
	case netcdf.SHORT:
		tmp := make([]int16, total)
		if err := v.ReadInt16s(tmp); err != nil {
			return nil, fmt.Errorf("read int16: %v", err)
		}
		data := make([]float64, total)
		for i, val := range tmp {
			data[i] = float64(val)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported variable type %v", t)
	}
}

// firstTextAttr returns the first non-empty attribute among names.
// HARP writers disagree on "units" versus "unit".
func firstTextAttr(v netcdf.Var, names ...string) string {
	for _, name := range names {
		if s := textAttr(v, name); s != "" {
			return s
		}
	}
	return ""
}

// textAttr reads a character attribute, returning "" when absent.
func textAttr(v netcdf.Var, name string) string {
	a := v.Attr(name)
	n, err := a.Len()
	if err != nil || n == 0 {
		return ""
	}
	buf := make([]byte, n)
	if err := a.ReadBytes(buf); err != nil {
		return ""
	}
	return strings.TrimRight(string(buf), "\x00")
}
