package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/musicmovie/internal/config"
	"github.com/ivlev/musicmovie/internal/frame"
	"github.com/ivlev/musicmovie/internal/plan"
	"github.com/ivlev/musicmovie/internal/sequence"
	"github.com/ivlev/musicmovie/internal/source"
	"github.com/ivlev/musicmovie/internal/system"
	"github.com/ivlev/musicmovie/internal/video"
)

// Project orchestrates one slideshow run: validate inputs, build the timed
// sequence, normalize frames, encode segments, mux with the audio track.
type Project struct {
	Config  *config.Config
	Encoder video.Encoder
	tempDir string
}

func NewProject(cfg *config.Config, enc video.Encoder) *Project {
	return &Project{
		Config:  cfg,
		Encoder: enc,
	}
}

func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	if err := p.Config.Validate(); err != nil {
		return err
	}

	// Fail on missing inputs before any sequence work happens.
	for _, path := range []string{p.Config.ShortDir, p.Config.LongDir, p.Config.AudioPath} {
		if _, err := os.Stat(path); err != nil {
			return err
		}
	}

	var err error
	p.tempDir, err = os.MkdirTemp("", "musicmovie_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	audioDuration, err := system.GetAudioDuration(ctx, p.Config.AudioPath)
	if err != nil {
		return fmt.Errorf("audio duration: %w", err)
	}

	entries, err := p.buildEntries(audioDuration)
	if err != nil {
		return err
	}

	if p.Config.PlanOutput != "" {
		if err := plan.Write(plan.FromSequence(entries, p.Config.AudioPath), p.Config.PlanOutput); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		fmt.Printf("[*] Plan saved: %s\n", p.Config.PlanOutput)
	}

	fmt.Println("--- [PROJECT: MUSIC MOVIE] ---")
	fmt.Printf("[*] Audio: %s | %.2fs | Entries: %d\n", p.Config.AudioPath, audioDuration, len(entries))
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Encoder: %s\n", p.Config.Width, p.Config.Height, p.Config.FPS, p.Config.VideoEncoder)
	fmt.Println("------------------------------")

	encodeStart := time.Now()
	segments, err := p.encodeSegments(ctx, entries)
	if err != nil {
		return err
	}
	encodeTime := time.Since(encodeStart)

	fmt.Println("[*] Muxing final video with audio...")
	muxStart := time.Now()
	if err := p.Encoder.Mux(ctx, segments, p.Config.AudioPath, p.Config.OutputVideo, p.tempDir); err != nil {
		return fmt.Errorf("mux final video: %w", err)
	}
	muxTime := time.Since(muxStart)

	if p.Config.ShowStats {
		p.printStats(len(entries), time.Since(startTime), encodeTime, muxTime)
	}

	return nil
}

// buildEntries either loads a previously saved plan or scans the pools and
// builds a fresh sequence against the audio duration.
func (p *Project) buildEntries(audioDuration float64) ([]sequence.Entry, error) {
	if p.Config.PlanInput != "" {
		loaded, err := plan.Read(p.Config.PlanInput)
		if err != nil {
			return nil, fmt.Errorf("read plan: %w", err)
		}
		fmt.Printf("[*] Using saved plan: %s\n", p.Config.PlanInput)
		return loaded.Sequence()
	}

	shortPool, err := source.Pool(p.Config.ShortDir, p.Config.DPI, p.tempDir)
	if err != nil {
		return nil, fmt.Errorf("short pool: %w", err)
	}
	longPool, err := source.Pool(p.Config.LongDir, p.Config.DPI, p.tempDir)
	if err != nil {
		return nil, fmt.Errorf("long pool: %w", err)
	}

	if p.Config.QRLink != "" {
		card, err := source.QRCard(p.Config.QRLink, p.Config.Height/2, p.tempDir)
		if err != nil {
			return nil, err
		}
		longPool = append(longPool, card)
		fmt.Printf("[*] QR card added to long pool: %s\n", p.Config.QRLink)
	}

	return sequence.Build(shortPool, longPool, audioDuration, p.Config)
}

// encodeSegments normalizes every entry and encodes it as its own segment,
// bounded by the configured worker count. Segment order is preserved by
// index, so parallel completion cannot reorder the final video.
func (p *Project) encodeSegments(ctx context.Context, entries []sequence.Entry) ([]string, error) {
	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	opts := video.Options{
		FPS:     p.Config.FPS,
		Encoder: p.Config.VideoEncoder,
		Quality: p.Config.Quality,
	}

	segments := make([]string, len(entries))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, e := range entries {
		g.Go(func() error {
			fr, err := frame.Normalize(e.File, p.Config.Width, p.Config.Height)
			if err != nil {
				return fmt.Errorf("normalize %s: %w", e.File, err)
			}

			segPath := filepath.Join(p.tempDir, fmt.Sprintf("s%04d.mp4", i))
			if err := p.Encoder.EncodeSegment(gctx, fr, segPath, e.Duration, opts); err != nil {
				return fmt.Errorf("segment %d (%s): %w", i, e.File, err)
			}

			segments[i] = segPath
			fmt.Printf("[>] Ready: %d/%d\n", done.Add(1), len(entries))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segments, nil
}

func (p *Project) printStats(entryCount int, totalTime, encodeTime, muxTime time.Duration) {
	host := system.Host()
	fps := float64(entryCount) / totalTime.Seconds()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Host: %s\n"+
			"Total Time: %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Muxing: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, host, totalTime.Seconds(), encodeTime.Seconds(), muxTime.Seconds(), fps,
	)

	logEntry := fmt.Sprintf("[%s] Build: %s | Audio: %s | Entries: %d | Total: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.AudioPath),
		entryCount,
		totalTime.Seconds(),
		encodeTime.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}
