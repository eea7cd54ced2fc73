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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/retroreplay/gifexport"
	"github.com/jetsetilly/retroreplay/plot"
	"github.com/jetsetilly/retroreplay/replay"
	"github.com/jetsetilly/retroreplay/session"
	"github.com/jetsetilly/retroreplay/video"
	"github.com/jetsetilly/retroreplay/wavwriter"
)

// singleMovie parses the flags of the current mode and returns the one movie
// named on the command line. the empty string means the mode should not
// continue.
func (l *launcher) singleMovie() (string, error) {
	if ok, err := l.parse(); !ok {
		return "", err
	}
	if len(l.md.RemainingArgs()) != 1 {
		return "", fmt.Errorf("one movie file required for %s mode", l.md)
	}
	return l.md.GetArg(0), nil
}

func (l *launcher) gif() error {
	l.md.NewMode()
	rf := l.addReplayFlags()
	out := l.md.AddString("o", "", "output GIF file (default is the movie name with .gif extension)")
	stride := l.md.AddInt("stride", l.cfg.GIFStride, "write every nth frame")
	scale := l.md.AddInt("scale", 1, "scale frames by a whole number")

	path, err := l.singleMovie()
	if path == "" {
		return err
	}

	rp, err := l.open(rf, path, false)
	if err != nil {
		return err
	}
	defer rp.Close()

	var frames []replay.Frame
	for frm, err := range l.frames(rp) {
		if err != nil {
			return err
		}
		frames = append(frames, frm)
	}

	t, err := gifexport.FromFrames(frames)
	if err != nil {
		return err
	}

	fn := outputName(*out, path, ".gif")
	err = gifexport.Write(fn, t, gifexport.Options{
		Stride: *stride,
		Scale:  *scale,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(l.output, "%d frames written to %s\n", len(frames), fn)

	return nil
}

func (l *launcher) wav() error {
	l.md.NewMode()
	rf := l.addReplayFlags()
	out := l.md.AddString("o", "", "output WAV file (default is the movie name with .wav extension)")

	path, err := l.singleMovie()
	if path == "" {
		return err
	}

	rp, err := l.open(rf, path, true)
	if err != nil {
		return err
	}
	defer rp.Close()

	fn := outputName(*out, path, ".wav")
	aw, err := wavwriter.New(fn)
	if err != nil {
		return err
	}

	for frm, err := range l.frames(rp) {
		if err != nil {
			_ = aw.EndMixing()
			return err
		}
		if frm.Sound == nil {
			continue
		}
		if err := aw.SetAudio(frm.Sound.Samples, frm.Sound.Rate); err != nil {
			_ = aw.EndMixing()
			return err
		}
	}

	n := aw.Samples()
	if err := aw.EndMixing(); err != nil {
		return err
	}

	fmt.Fprintf(l.output, "%d samples written to %s\n", n, fn)

	return nil
}

func (l *launcher) video() error {
	l.md.NewMode()
	rf := l.addReplayFlags()
	out := l.md.AddString("o", "", "output video file (default is the movie name with .mp4 extension)")
	profile := l.md.AddString("profile", string(video.ProfileFast), "encoding profile")
	scale := l.md.AddInt("scale", 4, "scale frames by a whole number")
	hz := l.md.AddFloat64("hz", video.DefaultHz, "frame rate of the replay")

	path, err := l.singleMovie()
	if path == "" {
		return err
	}

	prof, err := video.ParseProfile(*profile)
	if err != nil {
		return err
	}

	fn := outputName(*out, path, ".mp4")
	vid, err := video.NewFFMPEG(fn, video.Session{
		Log:     l.output,
		Profile: prof,
		Scale:   *scale,
		Hz:      *hz,
	})
	if err != nil {
		return err
	}

	rp, err := l.open(rf, path, false)
	if err != nil {
		return err
	}
	defer rp.Close()

	for frm, err := range l.frames(rp) {
		if err != nil {
			_ = vid.Destroy()
			return err
		}
		if err := vid.Process(frm); err != nil {
			_ = vid.Destroy()
			return err
		}
	}

	if err := vid.Destroy(); err != nil {
		return err
	}

	fmt.Fprintf(l.output, "\nvideo written to %s\n", fn)

	return nil
}

func (l *launcher) plot() error {
	l.md.NewMode()
	rf := l.addReplayFlags()
	out := l.md.AddString("o", "", "output HTML file (default is the input name with .html extension)")
	vars := l.md.AddString("vars", "", "comma separated list of variables to plot (default is every variable)")
	noPresses := l.md.AddBool("nopresses", false, "do not plot the press state of the actions")

	path, err := l.singleMovie()
	if path == "" {
		return err
	}

	var rec *session.Record

	// a session record in JSON can be plotted without a replay
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		rec, err = session.ReadJSON(f)
		_ = f.Close()
		if err != nil {
			return err
		}
	} else {
		rp, err := l.open(rf, path, true)
		if err != nil {
			return err
		}
		defer rp.Close()

		rec, err = session.FromFrames(l.frames(rp), path, rp.Actions())
		if err != nil {
			return err
		}
	}

	var opts plot.Options
	if *vars != "" {
		for _, v := range strings.Split(*vars, ",") {
			opts.Variables = append(opts.Variables, strings.TrimSpace(v))
		}
	}
	opts.NoPresses = *noPresses

	fn := outputName(*out, path, ".html")
	if err := plot.WriteFile(fn, rec, opts); err != nil {
		return err
	}

	fmt.Fprintf(l.output, "%s\nplotted to %s\n", rec, fn)

	return nil
}
