package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amantus-ai/cast/pkg/config"
	"github.com/amantus-ai/cast/pkg/eventlog"
	"github.com/amantus-ai/cast/pkg/export"
	"github.com/amantus-ai/cast/pkg/theme"
)

// formatsByExtension maps an --output extension to its export format name, covering every
// supported extension (.html .svg .txt .json .gif .mp4 .webm .cast).
var formatsByExtension = map[string]string{
	".cast": "cast",
	".svg":  "svg",
	".html": "html",
	".txt":  "txt",
	".json": "json",
	".gif":  "gif",
	".mp4":  "mp4",
	".webm": "webm",
}

func exportCmd() *cobra.Command {
	var formatFlag string
	var outputFlag string
	var titleFlag string
	var fpsFlag int
	var themeFlag string
	var speedFlag float64
	var trimStartFlag float64
	var trimEndFlag float64
	var targetFlag string
	var atFlag float64

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export a recording to another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			format := formatFlag
			if format == "" {
				format = formatFromExtension(outputFlag)
			}
			if format == "" {
				return fmt.Errorf("cannot infer export format: pass --format or an --output with a known extension")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			th := theme.ByName(themeFlag)
			if themeFlag == "" {
				if custom, err := cfg.CustomThemes(); err == nil {
					if t, ok := custom[cfg.ThemeName()]; ok {
						th = t
					} else {
						th = theme.ByName(cfg.ThemeName())
					}
				}
			}

			output := outputFlag
			if output == "" {
				output = defaultOutputPath(src, format)
			}

			target := export.TargetTime{Kind: export.TargetLast}
			if targetFlag != "" {
				k, ok := parseTargetKind(targetFlag)
				if !ok {
					return fmt.Errorf("unknown --target %q (want first, middle, or last)", targetFlag)
				}
				target = export.TargetTime{Kind: k}
			}
			if atFlag > 0 {
				target = export.TargetTime{Kind: export.TargetExplicit, Explicit: atFlag}
			}

			return runExport(src, output, format, exportParams{
				Title:      titleFlag,
				FPS:        fpsFlag,
				Theme:      th,
				Speed:      speedFlag,
				TrimStart:  trimStartFlag,
				TrimEnd:    trimEndFlag,
				Target:     target,
			})
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "export format (cast, svg, html, txt, json, gif, mp4, webm)")
	cmd.Flags().StringVar(&outputFlag, "output", "", "output path (format inferred from extension if --format is unset)")
	cmd.Flags().StringVar(&titleFlag, "title", "", "override the recording title in the output")
	cmd.Flags().IntVar(&fpsFlag, "fps", 24, "frames per second for video export targets")
	cmd.Flags().StringVar(&themeFlag, "theme", "", "color theme for rendered export targets")
	cmd.Flags().Float64Var(&speedFlag, "speed", 1.0, "speed multiplier for the cast export target")
	cmd.Flags().Float64Var(&trimStartFlag, "trim-start", 0, "drop events before this many seconds, for the cast export target")
	cmd.Flags().Float64Var(&trimEndFlag, "trim-end", 0, "drop events after this many seconds, for the cast export target")
	cmd.Flags().StringVar(&targetFlag, "target", "", "frame to render for still/text export targets: first, middle, or last")
	cmd.Flags().Float64Var(&atFlag, "at", 0, "render the frame at this many seconds, for still/text export targets")
	return cmd
}

func parseTargetKind(s string) (export.TargetKind, bool) {
	switch s {
	case "first":
		return export.TargetFirst, true
	case "middle":
		return export.TargetMiddle, true
	case "last":
		return export.TargetLast, true
	default:
		return 0, false
	}
}

func formatFromExtension(output string) string {
	if output == "" {
		return ""
	}
	return formatsByExtension[strings.ToLower(filepath.Ext(output))]
}

func defaultOutputPath(src, format string) string {
	base := strings.TrimSuffix(src, filepath.Ext(src))
	ext := format
	for e, f := range formatsByExtension {
		if f == format {
			ext = strings.TrimPrefix(e, ".")
			break
		}
	}
	return base + "." + ext
}

// exportParams bundles the flags every export target needs a subset of.
type exportParams struct {
	Title     string
	FPS       int
	Theme     theme.Theme
	Speed     float64
	TrimStart float64
	TrimEnd   float64
	Target    export.TargetTime
}

// runExport dispatches to the pkg/export target matching format. Targets that need the
// recording's total duration (svg, html, txt, the video targets) open the source twice: once
// through eventlog.ReadInfo for duration, then again fresh for the actual transform, since
// eventlog.Reader is single-pass.
func runExport(src, output, format string, p exportParams) error {
	switch format {
	case "cast":
		return exportCast(src, output, p)
	case "svg":
		svg, err := renderThumbnail(src, p)
		if err != nil {
			return err
		}
		return writeOutputFile(output, []byte(svg))
	case "html":
		svg, err := renderThumbnail(src, p)
		if err != nil {
			return err
		}
		return writeOutputFile(output, []byte(export.WrapHTML(titleOrDefault(p.Title, src), svg)))
	case "txt":
		info, err := readInfo(src)
		if err != nil {
			return err
		}
		r, f, err := openReader(src)
		if err != nil {
			return err
		}
		defer f.Close()
		text, err := export.TextFrame(r, p.Target, info.Duration)
		if err != nil {
			return err
		}
		return writeOutputFile(output, []byte(text))
	case "json":
		r, f, err := openReader(src)
		if err != nil {
			return err
		}
		defer f.Close()
		data, err := export.JSONDump(r)
		if err != nil {
			return err
		}
		return writeOutputFile(output, data)
	case "gif", "mp4", "webm":
		return exportVideo(src, output, format, p)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func titleOrDefault(title, src string) string {
	if title != "" {
		return title
	}
	return filepath.Base(src)
}

func renderThumbnail(src string, p exportParams) (string, error) {
	info, err := readInfo(src)
	if err != nil {
		return "", err
	}
	r, f, err := openReader(src)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return export.Thumbnail(r, p.Target, info.Duration, p.Theme)
}

func exportCast(src, output string, p exportParams) error {
	r, f, err := openReader(src)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := os.OpenFile(output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := eventlog.NewWriter(out)

	err = export.SpeedTrim(r, w, export.SpeedTrimOptions{
		Speed:     p.Speed,
		TrimStart: p.TrimStart,
		TrimEnd:   p.TrimEnd,
		Title:     p.Title,
	})
	if err != nil {
		w.Close()
		os.Remove(output)
		return err
	}
	return w.Close()
}

func exportVideo(src, output, format string, p exportParams) error {
	info, err := readInfo(src)
	if err != nil {
		return err
	}
	r, f, err := openReader(src)
	if err != nil {
		return err
	}
	defer f.Close()

	container := export.ContainerGIF
	switch format {
	case "mp4":
		container = export.ContainerMP4
	case "webm":
		container = export.ContainerWebM
	}

	return export.Video(r, info.Duration, output, export.VideoOptions{
		FPS:       p.FPS,
		Theme:     p.Theme,
		Container: container,
	})
}

func readInfo(path string) (eventlog.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return eventlog.Info{}, err
	}
	defer f.Close()
	return eventlog.ReadInfo(f)
}

func openReader(path string) (*eventlog.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := eventlog.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return r, f, nil
}

func writeOutputFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &export.IoError{Op: "writing " + path, Err: err}
	}
	return nil
}
