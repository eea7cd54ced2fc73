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

package video

import (
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/replay"
	"github.com/jetsetilly/retroreplay/wavwriter"
)

type Profile string

const (
	ProfileFast        Profile = "FAST"
	Profile1080        Profile = "1080"
	ProfileYouTube1080 Profile = "YouTube1080"
	ProfileYouTube4k   Profile = "YouTube4k"
)

// ParseProfile converts a string to a Profile. The string is not case
// sensitive.
func ParseProfile(s string) (Profile, error) {
	for _, p := range []Profile{ProfileFast, Profile1080, ProfileYouTube1080, ProfileYouTube4k} {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", curated.Errorf("ffmpeg: unknown profile: %s", s)
}

// Session is used to configure the FFMPEG process
type Session struct {
	Log       io.Writer
	LastFrame int
	Profile   Profile

	// frames are scaled by this whole number before encoding. values less
	// than one are treated as one
	Scale int

	// the frame rate of the replay
	Hz float64
}

// DefaultHz is the frame rate used if the Session does not specify one.
const DefaultHz = 60.0

type FFMPEG struct {
	conf Session

	// details set by the preprocess() function on the first frame. the
	// Process() function checks to see if the parameters change between
	// calls
	width  int
	height int

	finalVideoFilename string
	tempVideoFilename  string
	tempAudioFilename  string

	// the time the recording started
	start time.Time

	// the running ffmpeg command and the data pipe from the emulation
	encoder *exec.Cmd
	pipe    io.WriteCloser

	// scaled frame sent to the pipe
	scaled            *image.RGBA
	lastFrameRendered int

	// we record audio to a separate file and then mux it with the video in a final step
	wavs *wavwriter.WavWriter
}

// NewFFMPEG is the preferred method of initialisation for the FFMPEG type.
// The filename is the name of the final video file.
func NewFFMPEG(filename string, conf Session) (*FFMPEG, error) {
	if conf.Log != nil {
		fmt.Fprintln(conf.Log, "testing for ffmpeg and ffprobe")
	}

	// check that both ffprobe and ffmpeg are available in the executable path
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, curated.Errorf("ffmpeg: not installed")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, curated.Errorf("ffmpeg: ffprobe not installed")
	}

	if conf.Scale < 1 {
		conf.Scale = 1
	}
	if conf.Hz <= 0 {
		conf.Hz = DefaultHz
	}
	if conf.Profile == "" {
		conf.Profile = ProfileFast
	}

	dir, base := filepath.Split(filename)

	vid := &FFMPEG{
		conf:               conf,
		finalVideoFilename: filename,
		tempVideoFilename:  filepath.Join(dir, fmt.Sprintf("_tmp_%s.mp4", base)),
		tempAudioFilename:  filepath.Join(dir, fmt.Sprintf("_tmp_%s.wav", base)),
		lastFrameRendered:  -1,
	}

	return vid, nil
}

// encoderArgs returns the arguments for the ffmpeg command that encodes the
// piped frames.
func encoderArgs(profile Profile, width int, height int, hz float64, output string) ([]string, error) {
	var ffmpegInput = []string{
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%.02f", hz), // incoming frame rate
		"-i", "-", // stdin pipe created below
	}

	var ffmpegFast = []string{
		"-crf", "18", // amount of compression. 12 and higher starts to lose colour fidelity
		"-preset", "fast", // the amount of time spent optimising compression between frames
		"-r", "60", // output is always 60fps
	}

	var ffmpeg1080p = []string{
		"-crf", "11",
		"-preset", "medium",
		"-vf", "scale=-2:1080:flags=neighbor,pad=1920:1080:(ow-iw)/2:(oh-ih)/2",
		"-r", "60",
	}

	var ffmpegYouTube1080 = []string{
		"-c:v", "libx264",
		"-preset", "slow",
		"-pix_fmt", "yuv420p10le",
		"-crf", "15", // amount of compression. 15 is a good value for yuv420p10le
		"-profile:v", "high10",
		"-vf", "scale=-2:1080:flags=neighbor,pad=1920:1080:(ow-iw)/2:(oh-ih)/2",
		"-r", "60",
	}

	var ffmpegYouTube4k = []string{
		"-c:v", "libx264",
		"-preset", "slow",
		"-pix_fmt", "yuv420p10le",
		"-crf", "15",
		"-profile:v", "high10",
		"-vf", "scale=-2:2160:flags=neighbor,pad=3840:2160:(ow-iw)/2:(oh-ih)/2",
		"-r", "60",
	}

	var ffmpegOutput = []string{
		"-v", "error", // less noisy output from the ffmpeg command
		"-y", // always overwrite output file
		output,
	}

	var opts []string

	opts = append(opts, ffmpegInput...)
	switch profile {
	case ProfileFast:
		opts = append(opts, ffmpegFast...)
	case Profile1080:
		opts = append(opts, ffmpeg1080p...)
	case ProfileYouTube1080:
		opts = append(opts, ffmpegYouTube1080...)
	case ProfileYouTube4k:
		opts = append(opts, ffmpegYouTube4k...)
	default:
		return nil, curated.Errorf("ffmpeg: unknown profile: %s", profile)
	}
	opts = append(opts, ffmpegOutput...)

	return opts, nil
}

func (vid *FFMPEG) preprocess(width int, height int) error {
	vid.width = width * vid.conf.Scale
	vid.height = height * vid.conf.Scale

	opts, err := encoderArgs(vid.conf.Profile, vid.width, vid.height, vid.conf.Hz, vid.tempVideoFilename)
	if err != nil {
		return err
	}

	vid.encoder = exec.Command("ffmpeg", opts...)

	vid.pipe, err = vid.encoder.StdinPipe()
	if err != nil {
		return curated.Errorf("ffmpeg: %v", err)
	}

	vid.encoder.Stderr = os.Stderr
	vid.encoder.Stdout = os.Stdout

	err = vid.encoder.Start()
	if err != nil {
		return curated.Errorf("ffmpeg: %v", err)
	}

	vid.scaled = image.NewRGBA(image.Rect(0, 0, vid.width, vid.height))

	vid.wavs, err = wavwriter.New(vid.tempAudioFilename)
	if err != nil {
		return curated.Errorf("ffmpeg: %v", err)
	}

	vid.start = time.Now()

	if vid.conf.Log != nil {
		fmt.Fprintln(vid.conf.Log, "recording video")
	}

	return nil
}

// IsRecording returns true if the ffmpeg process is running.
func (vid *FFMPEG) IsRecording() bool {
	return vid.pipe != nil
}

// Process sends the frame to ffmpeg. Frames without an image are not
// encoded.
func (vid *FFMPEG) Process(frm replay.Frame) error {
	if frm.Visual == nil {
		return nil
	}

	w := frm.Visual.Rect.Dx()
	h := frm.Visual.Rect.Dy()

	if vid.pipe == nil {
		if err := vid.preprocess(w, h); err != nil {
			return err
		}
	} else if w*vid.conf.Scale != vid.width || h*vid.conf.Scale != vid.height {
		return curated.Errorf("ffmpeg: size of frame has changed")
	}

	if frm.Index <= vid.lastFrameRendered {
		return nil
	}
	vid.lastFrameRendered = frm.Index

	if vid.conf.Log != nil {
		if frm.Index > vid.conf.LastFrame {
			fmt.Fprintf(vid.conf.Log, "frame %d\r", frm.Index)
		} else {
			fmt.Fprintf(vid.conf.Log, "frame %d of %d\r", frm.Index, vid.conf.LastFrame)
		}
	}

	draw.NearestNeighbor.Scale(vid.scaled, vid.scaled.Rect, frm.Visual, frm.Visual.Rect, draw.Src, nil)

	if _, err := vid.pipe.Write(vid.scaled.Pix); err != nil {
		return curated.Errorf("ffmpeg: %v", err)
	}

	if frm.Sound != nil {
		if err := vid.wavs.SetAudio(frm.Sound.Samples, frm.Sound.Rate); err != nil {
			return curated.Errorf("ffmpeg: %v", err)
		}
	}

	return nil
}

// Destroy stops the ffmpeg process and muxes the video and audio into the
// final file.
func (vid *FFMPEG) Destroy() error {
	if vid.pipe == nil {
		return nil
	}

	vid.pipe.Close()
	err := vid.encoder.Wait()
	vid.pipe = nil
	vid.encoder = nil
	if err != nil {
		return curated.Errorf("ffmpeg: %v", err)
	}

	// a replay with no sound produces a video with no sound
	if vid.wavs.Samples() == 0 {
		if err := os.Rename(vid.tempVideoFilename, vid.finalVideoFilename); err != nil {
			return curated.Errorf("ffmpeg: %v", err)
		}
		return nil
	}

	if err := vid.wavs.EndMixing(); err != nil {
		return curated.Errorf("ffmpeg: %v", err)
	}

	// summarise results
	if vid.conf.Log != nil {
		diff := time.Since(vid.start)
		fps := float64(vid.lastFrameRendered+1) / diff.Seconds()
		fmt.Fprintf(vid.conf.Log, "%d frames recorded in %s (%.02f fps)\n", vid.lastFrameRendered+1, diff.Round(time.Second), fps)
		fmt.Fprintln(vid.conf.Log, "probing intermediary video and audio files")
	}

	videoDuration, err := probeDuration(vid.tempVideoFilename)
	if err != nil {
		return err
	}
	audioDuration, err := probeDuration(vid.tempAudioFilename)
	if err != nil {
		return err
	}

	// calculate stretch value
	stretch := audioDuration / videoDuration

	if vid.conf.Log != nil {
		fmt.Fprintf(vid.conf.Log, "stretching audio by a factor of %0.2f\n", 1.0/stretch)
		fmt.Fprintf(vid.conf.Log, "muxing final output file: %s\n", vid.finalVideoFilename)
	}

	muxer := exec.Command("ffmpeg",
		"-v", "error",
		"-y",
		"-i", vid.tempVideoFilename, "-i", vid.tempAudioFilename,
		"-vcodec", "copy", "-acodec", "aac",
		"-filter:a", fmt.Sprintf("atempo=%f", stretch),
		vid.finalVideoFilename)

	// using Run() function because we want to wait for ffmpeg to complete
	if err := muxer.Run(); err != nil {
		return curated.Errorf("ffmpeg: mux: %v", err)
	}

	// removing temp files only if probing and muxing has succeeded
	os.Remove(vid.tempVideoFilename)
	os.Remove(vid.tempAudioFilename)

	return nil
}

func probeDuration(filename string) (float64, error) {
	probe := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1",
		filename)

	result, err := probe.Output()
	if err != nil {
		return 0, curated.Errorf("ffprobe: %v", err)
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(string(result)), 64)
	if err != nil {
		return 0, curated.Errorf("ffprobe: %v", err)
	}
	if d <= 0 {
		return 0, curated.Errorf("ffprobe: %s has no duration", filename)
	}

	return d, nil
}
