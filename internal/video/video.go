package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ivlev/musicmovie/internal/frame"
)

// Options carries the encoder settings shared by all segments of a run.
type Options struct {
	FPS     int
	Encoder string
	Quality int
}

// Encoder turns normalized frames into video segments and muxes them with
// the audio track.
type Encoder interface {
	EncodeSegment(ctx context.Context, fr *frame.Frame, videoPath string, duration float64, opts Options) error
	Mux(ctx context.Context, segmentPaths []string, audioPath, finalPath, tmpDir string) error
}

// FFmpegEncoder shells out to ffmpeg, feeding each segment a single raw
// RGB24 frame over stdin and looping it for the segment duration.
type FFmpegEncoder struct{}

func (e *FFmpegEncoder) EncodeSegment(ctx context.Context, fr *frame.Frame, videoPath string, duration float64, opts Options) error {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", fr.Width, fr.Height),
		"-i", "-",
		// Clone the single piped frame until -t cuts the stream.
		"-vf", fmt.Sprintf("loop=loop=-1:size=1,fps=%d", opts.FPS),
		"-t", fmt.Sprintf("%f", duration),
		"-pix_fmt", "yuv420p",
		"-c:v", opts.Encoder,
	}
	args = append(args, qualityArgs(opts)...)
	args = append(args, videoPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	if _, err := stdin.Write(fr.Pix); err != nil {
		stdin.Close()
		cmd.Wait()
		return fmt.Errorf("write raw frame error: %w", err)
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w", err)
	}
	return nil
}

// Mux concatenates the ordered segments and lays the audio track under
// them. -shortest guards against sub-frame drift between the duration sum
// and the audio length.
func (e *FFmpegEncoder) Mux(ctx context.Context, segmentPaths []string, audioPath, finalPath, tmpDir string) error {
	concatFilePath := filepath.Join(tmpDir, "inputs.txt")
	f, err := os.Create(concatFilePath)
	if err != nil {
		return err
	}
	for _, p := range segmentPaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			f.Close()
			return err
		}
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	if err := f.Close(); err != nil {
		return err
	}

	args := []string{"-y",
		"-f", "concat", "-safe", "0", "-i", concatFilePath,
		"-i", audioPath,
		"-map", "0:v", "-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac", "-b:a", "192k",
		"-shortest",
		finalPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mux error: %v, output: %s", err, string(out))
	}
	return nil
}

func qualityArgs(opts Options) []string {
	switch opts.Encoder {
	case "h264_videotoolbox":
		// VideoToolbox does not take -q:v reliably, so quality maps to a
		// bitrate (75 -> 7.5 Mbit/s).
		return []string{"-b:v", fmt.Sprintf("%dk", opts.Quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", opts.Quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", opts.Quality), "-preset", "medium"}
	}
}
