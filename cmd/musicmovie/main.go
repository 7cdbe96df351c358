package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/musicmovie/internal/config"
	"github.com/ivlev/musicmovie/internal/engine"
	"github.com/ivlev/musicmovie/internal/system"
	"github.com/ivlev/musicmovie/internal/video"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	shortDirPtr := flag.String("short-dir", "", "Directory of short-pool images (or a PDF file)")
	longDirPtr := flag.String("long-dir", "", "Directory of long-pool images (or a PDF file)")
	audioPtr := flag.String("audio", "", "Audio file (or a directory, in which case the most recent audio file inside is used)")
	outputPtr := flag.String("output", "", "Output video path (default: output/<audio>_<timestamp>.mp4)")
	longDurPtr := flag.Float64("long-duration", 3.0, "Display duration for long-pool images (sec)")
	shortStartPtr := flag.Float64("short-start", 0.5, "Short image duration at the start of the timeline (sec)")
	shortEndPtr := flag.Float64("short-end", 0.1, "Short image duration at the end of the timeline (sec)")
	accelPtr := flag.Float64("accel", 1.0, "Acceleration exponent for the short duration ramp")
	widthPtr := flag.Int("width", 1920, "Frame width")
	heightPtr := flag.Int("height", 1080, "Frame height")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	fpsPtr := flag.Int("fps", 30, "FPS")
	dpiPtr := flag.Int("dpi", 150, "Render DPI for PDF pools")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Worker count for frame normalization/encoding")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto; x264: CRF, VideoToolbox: bitrate = Q*100kbit/s)")
	configPtr := flag.String("config", "", "YAML timing preset file")
	planOutPtr := flag.String("plan-out", "", "Write the computed (file, duration) plan to this YAML file")
	planInPtr := flag.String("plan-in", "", "Encode a previously saved plan instead of building a sequence")
	qrPtr := flag.String("qr-link", "", "Append a QR code card for this link to the long pool")
	statsPtr := flag.Bool("stats", false, "Print a performance report")

	flag.Parse()

	if *shortDirPtr == "" || *longDirPtr == "" || *audioPtr == "" {
		log.Fatal("[-] Error: -short-dir, -long-dir and -audio are required")
	}

	width, height := *widthPtr, *heightPtr
	switch *presetPtr {
	case "16:9":
		width, height = 1920, 1080
	case "9:16":
		width, height = 1080, 1920
	case "4:5":
		width, height = 1080, 1350
	}

	audioPath := *audioPtr
	if fi, err := os.Stat(audioPath); err == nil && fi.IsDir() {
		latest, err := system.FindLatestAudio(audioPath)
		if err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
		audioPath = latest
		fmt.Printf("[*] Audio selected: %s\n", audioPath)
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		baseName := filepath.Base(audioPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
		os.MkdirAll("output", 0755)
	}

	encoderName := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware encoder detected: %s\n", encoderName)
	}

	quality := *qualityPtr
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75
		case "h264_nvenc":
			quality = 28
		default:
			quality = 23
		}
	}

	cfg := &config.Config{
		ShortDir:           *shortDirPtr,
		LongDir:            *longDirPtr,
		AudioPath:          audioPath,
		OutputVideo:        finalOutput,
		LongDuration:       *longDurPtr,
		ShortStartDuration: *shortStartPtr,
		ShortEndDuration:   *shortEndPtr,
		ShortAcceleration:  *accelPtr,
		Width:              width,
		Height:             height,
		FPS:                *fpsPtr,
		DPI:                *dpiPtr,
		Workers:            *workersPtr,
		VideoEncoder:       encoderName,
		Quality:            quality,
		PlanInput:          *planInPtr,
		PlanOutput:         *planOutPtr,
		QRLink:             *qrPtr,
		ShowStats:          *statsPtr,
		BuildVersion:       buildVersion,
	}

	if *configPtr != "" {
		if err := cfg.ApplyPreset(*configPtr); err != nil {
			log.Fatalf("[-] Preset error: %v", err)
		}
	}

	project := engine.NewProject(cfg, &video.FFmpegEncoder{})
	if err := project.Run(context.Background()); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	fmt.Printf("[+++] Done! Result: %s\n", cfg.OutputVideo)
}
