package export

import (
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/frameimage"
	"github.com/amantus-ai/cast/pkg/term"
	"github.com/amantus-ai/cast/pkg/theme"
)

// ExportError reports an unsupported format, a missing muxer, or a non-zero muxer exit (spec
// §7); it is always surfaced verbatim and never leaves a partial output file.
type ExportError struct {
	Reason string
	Err    error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return "export: " + e.Reason + ": " + e.Err.Error()
	}
	return "export: " + e.Reason
}
func (e *ExportError) Unwrap() error { return e.Err }

// Container is the target video container (spec §4.9).
type Container int

const (
	ContainerGIF Container = iota
	ContainerMP4
	ContainerWebM
)

// VideoOptions configures Video (spec §4.9).
type VideoOptions struct {
	FPS       int
	Theme     theme.Theme
	Container Container
	FFmpegPath string // "" means discover via FFMPEG_PATH env var or PATH
}

// muxerPath resolves the muxer executable per spec §6.3: an explicit override, then
// FFMPEG_PATH, then PATH lookup.
func muxerPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if p := os.Getenv("FFMPEG_PATH"); p != "" {
		return p, nil
	}
	p, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", &ExportError{Reason: "ffmpeg not found on PATH and FFMPEG_PATH is unset", Err: err}
	}
	return p, nil
}

// Video renders src to frames at a fixed FPS, writing each as a PPM file into a temp
// directory (deduplicating identical consecutive frames via a hard link, falling back to a
// copy across filesystems), then invokes the muxer subprocess to produce the requested
// container at outPath (spec §4.9).
func Video(src *eventlog.Reader, duration float64, outPath string, opts VideoOptions) (err error) {
	if opts.FPS <= 0 {
		opts.FPS = 24
	}
	tmpDir, err := os.MkdirTemp("", "cast-video-*")
	if err != nil {
		return &ExportError{Reason: "creating temp frame directory", Err: err}
	}
	defer os.RemoveAll(tmpDir)

	framePattern, err := renderFrames(src, duration, opts, tmpDir)
	if err != nil {
		return err
	}

	muxer, err := muxerPath(opts.FFmpegPath)
	if err != nil {
		return err
	}

	args := muxerArgs(framePattern, opts, outPath)
	cmd := exec.Command(muxer, args...)
	out, runErr := cmd.CombinedOutput()
	if runErr != nil {
		os.Remove(outPath)
		return &ExportError{Reason: fmt.Sprintf("muxer failed: %s", string(out)), Err: runErr}
	}
	return nil
}

// renderFrames writes one PPM per frame tick into dir, returning a printf-style pattern
// ("frame-%06d.ppm") the muxer can glob. Frames whose content hash matches the previous
// frame's are emitted by hard-linking (or, if that fails, copying) the previous frame's file,
// to save rendering work (spec §4.9).
func renderFrames(src *eventlog.Reader, duration float64, opts VideoOptions, dir string) (string, error) {
	e := term.New(src.Header.Width, src.Header.Height)
	frameCount := int(duration*float64(opts.FPS)) + 1

	var lastHash [32]byte
	var lastPath string
	haveLast := false

	events := drainEvents(src)
	evIdx := 0

	for i := 0; i < frameCount; i++ {
		t := float64(i) / float64(opts.FPS)
		for evIdx < len(events) && events[evIdx].Time <= t {
			applyEvent(e, events[evIdx])
			evIdx++
		}

		canvas := frameimage.Render(e.Rows(), opts.Theme)
		ppm := frameimage.EncodePPM(canvas)
		hash := sha256.Sum256(ppm)
		path := filepath.Join(dir, fmt.Sprintf("frame-%06d.ppm", i))

		if haveLast && hash == lastHash {
			if err := os.Link(lastPath, path); err != nil {
				if err := copyFile(lastPath, path); err != nil {
					return "", &ExportError{Reason: "deduplicating frame", Err: err}
				}
			}
		} else {
			if err := os.WriteFile(path, ppm, 0o644); err != nil {
				return "", &ExportError{Reason: "writing frame", Err: err}
			}
		}
		lastHash, lastPath, haveLast = hash, path, true
	}

	return filepath.Join(dir, "frame-%06d.ppm"), nil
}

func drainEvents(src *eventlog.Reader) []eventlog.Event {
	var events []eventlog.Event
	for {
		ev, err := src.Next()
		if err != nil {
			break
		}
		events = append(events, ev)
	}
	return events
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// muxerArgs builds the ffmpeg-compatible argument list for each container (spec §4.9): a
// two-pass palette for GIF, H.264/yuv420p with faststart for MP4, VP9 for WebM.
func muxerArgs(framePattern string, opts VideoOptions, outPath string) []string {
	base := []string{"-y", "-framerate", fmt.Sprint(opts.FPS), "-i", framePattern}
	switch opts.Container {
	case ContainerGIF:
		return append(base,
			"-filter_complex", "[0:v]split[a][b];[a]palettegen[p];[b][p]paletteuse",
			outPath,
		)
	case ContainerMP4:
		return append(base,
			"-c:v", "libx264", "-pix_fmt", "yuv420p", "-movflags", "+faststart",
			outPath,
		)
	case ContainerWebM:
		return append(base,
			"-c:v", "libvpx-vp9", "-pix_fmt", "yuv420p",
			outPath,
		)
	default:
		return append(base, outPath)
	}
}
