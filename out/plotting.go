// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// figure size
var (
	FigWidth  = 6 * vg.Inch
	FigHeight = 4 * vg.Inch
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias
	X     []float64 // x-values
	Y     []float64 // y-values
	Xlbl  string    // horizontal axis label; e.g. "u"
	Ylbl  string    // vertical axis label; e.g. "λ"
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Id     string       // unique identifier
	Title  string       // title of subplot
	Xscale float64      // x-axis scale
	Yscale float64      // y-axis scale
	Xlbl   string       // x-axis label
	Ylbl   string       // y-axis label
	Data   []*PltEntity // data to be plotted
}

// Splot activates a new subplot window
func (o *Results) Splot(id, splotTitle string) {
	s := &SplotDat{Id: id, Title: splotTitle}
	o.Splots = append(o.Splots, s)
	o.Csplot = s
}

// SplotConfig configures units and scales of axes
func (o *Results) SplotConfig(xunit, yunit string, xscale, yscale float64) {
	if o.Csplot != nil {
		var xlabel, ylabel string
		if len(o.Csplot.Data) > 0 {
			xlabel = o.Csplot.Data[0].Xlbl
			ylabel = o.Csplot.Data[0].Ylbl
		}
		o.Csplot.Xlbl = label(xlabel, xunit)
		o.Csplot.Ylbl = label(ylabel, yunit)
		o.Csplot.Xscale = xscale
		o.Csplot.Yscale = yscale
	}
}

// Plot adds data to the current subplot
//  xHandle -- can be a string, e.g. "λ" or "u" or a slice, e.g. κ = []float64{0, 1, 2}
//  yHandle -- can be a string, e.g. "κ" or a slice
//  alias   -- alias of entity defined with Define or just a legend label if both handles are slices
func (o *Results) Plot(xHandle, yHandle interface{}, alias string) (err error) {
	e := &PltEntity{Alias: alias}
	e.X, e.Xlbl, err = o.valsAndLabel(xHandle, alias)
	if err != nil {
		return
	}
	e.Y, e.Ylbl, err = o.valsAndLabel(yHandle, alias)
	if err != nil {
		return
	}
	if len(e.X) != len(e.Y) {
		return chk.Err("lengths of x- and y-series are different. len(x)=%d, len(y)=%d", len(e.X), len(e.Y))
	}
	if o.Csplot == nil {
		o.Splot(io.Sf("%d", len(o.Splots)), "")
	}
	o.Csplot.Data = append(o.Csplot.Data, e)
	o.SplotConfig("", "", 1, 1)
	return
}

// Draw saves one figure per subplot
//  dirout -- directory to save figures
//  fname  -- file name; e.g. "efem.png" or "efem.svg". Files are named fnkey_id.ext
func (o *Results) Draw(dirout, fname string) (files []string, err error) {
	fnk := io.FnKey(fname)
	ext := filepath.Ext(fname)
	if fnk == "" || ext == "" {
		return nil, chk.Err("file name %q must have a key and an extension", fname)
	}
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return nil, chk.Err("cannot create directory for figures (%s): %v", dirout, err)
	}
	for _, spl := range o.Splots {
		p := plot.New()
		p.Title.Text = spl.Title
		p.X.Label.Text = spl.Xlbl
		p.Y.Label.Text = spl.Ylbl
		p.Add(plotter.NewGrid())
		for i, d := range spl.Data {
			xys := make(plotter.XYs, len(d.X))
			for j := range d.X {
				xys[j].X = scaled(d.X[j], spl.Xscale)
				xys[j].Y = scaled(d.Y[j], spl.Yscale)
			}
			line, pts, e := plotter.NewLinePoints(xys)
			if e != nil {
				return files, chk.Err("cannot plot %q in %q:\n%v", d.Alias, spl.Id, e)
			}
			line.Color = plotutil.Color(i)
			line.Dashes = plotutil.Dashes(i)
			pts.Color = plotutil.Color(i)
			pts.Shape = plotutil.Shape(i)
			p.Add(line, pts)
			p.Legend.Add(d.Alias, line, pts)
		}
		fn := filepath.Join(dirout, fnk+"_"+spl.Id+ext)
		err = p.Save(FigWidth, FigHeight, fn)
		if err != nil {
			return files, chk.Err("cannot save figure:\n%v", err)
		}
		files = append(files, fn)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Results) valsAndLabel(handle interface{}, alias string) ([]float64, string, error) {
	switch hnd := handle.(type) {
	case []float64:
		return hnd, "", nil
	case string:
		if hnd == "λ" {
			return o.Lambdas(), "λ", nil
		}
		res, err := o.GetRes(hnd, alias)
		return res, hnd, err
	}
	return nil, "", chk.Err("cannot get values slice with handle = %v", handle)
}

func label(key, unit string) string {
	if unit == "" {
		return key
	}
	return key + " [" + unit + "]"
}

func scaled(v, scale float64) float64 {
	if scale == 0 {
		return v
	}
	return v * scale
}
