// This file is part of Retroreplay.
//
// Retroreplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroreplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroreplay.  If not, see <https://www.gnu.org/licenses/>.

package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/session"
)

// Options for Render().
type Options struct {
	// only plot the named variables. an empty list means every variable
	Variables []string

	// do not plot the press state of the actions
	NoPresses bool
}

func frameAxis(n int) []int {
	x := make([]int, n)
	for i := range x {
		x[i] = i
	}
	return x
}

func newLine(title string, subtitle string, n int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	line.SetXAxis(frameAxis(n))
	return line
}

// Render the session record as a HTML page.
func Render(w io.Writer, rec *session.Record, opts Options) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	keys := rec.Keys
	if len(opts.Variables) > 0 {
		keys = opts.Variables
	}

	page := components.NewPage()
	page.PageTitle = rec.Filename

	n := rec.Len()

	for _, k := range keys {
		v, ok := rec.Variable(k)
		if !ok {
			return curated.Errorf("plot: no variable named %s", k)
		}
		line := newLine(k, rec.String(), n)
		line.AddSeries(k, intData(v))
		page.AddCharts(line)
	}

	reward := newLine("reward", rec.String(), n)
	reward.AddSeries("reward", rewardData(rec.Rewards, false))
	reward.AddSeries("cumulative", rewardData(rec.Rewards, true))
	page.AddCharts(reward)

	if !opts.NoPresses {
		presses := newLine("presses", rec.String(), n)
		for i, a := range rec.Actions {
			p, _ := rec.Pressed(a)
			presses.AddSeries(a, pressData(p, i))
		}
		page.AddCharts(presses)
	}

	if err := page.Render(w); err != nil {
		return curated.Errorf("plot: %v", err)
	}

	return nil
}

// WriteFile renders the session record to the named file.
func WriteFile(filename string, rec *session.Record, opts Options) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("plot: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("plot: %v", err)
		}
	}()

	return Render(f, rec, opts)
}

func intData(v []int) []opts.LineData {
	d := make([]opts.LineData, len(v))
	for i := range v {
		d[i] = opts.LineData{Value: v[i]}
	}
	return d
}

func rewardData(v []float64, cumulative bool) []opts.LineData {
	d := make([]opts.LineData, len(v))
	var acc float64
	for i := range v {
		if cumulative {
			acc += v[i]
			d[i] = opts.LineData{Value: acc}
		} else {
			d[i] = opts.LineData{Value: v[i]}
		}
	}
	return d
}

// press states are offset by the index of the action so that the lines do not
// overlap.
func pressData(v []bool, idx int) []opts.LineData {
	d := make([]opts.LineData, len(v))
	base := idx * 2
	for i := range v {
		val := base
		if v[i] {
			val++
		}
		d[i] = opts.LineData{Value: val, Name: fmt.Sprintf("%v", v[i])}
	}
	return d
}
