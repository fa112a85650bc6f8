// Command threadart converts a raster image into string art: a
// winding path over nails on a circular frame whose thread lines
// approximate the image.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"threadart.org/linecache"
	"threadart.org/pix"
	"threadart.org/render"
	"threadart.org/weave"
)

var (
	output           = flag.String("output", "threadart.png", "output image file")
	pathOut          = flag.String("path", "threadart_path.txt", "output nail sequence file")
	lines            = flag.Int("lines", 5000, "maximum number of lines")
	nails            = flag.Int("nails", 720, "number of nails around the circle")
	size             = flag.Int("size", 500, "canvas size in pixels")
	darkness         = flag.Float64("darkness", 25, "brightness removed per line")
	minScore         = flag.Float64("min-score", 10, "minimum improvement score per line")
	saveEvery        = flag.Int("save-every", 20, "save progress every N lines (0 to disable)")
	noEmphasis       = flag.Bool("no-emphasis", false, "disable feature emphasis masking")
	protect          = flag.Bool("protect-negative-space", false, "penalize lines crossing blank regions")
	protectPenalty   = flag.Float64("protection-penalty", 0.5, "penalty weight for protected regions")
	protectThreshold = flag.Float64("protection-threshold", 200, "brightness threshold for protected regions")
	lineColor        = flag.String("line-color", "0,0,0", "line color as R,G,B")
	cacheFile        = flag.String("cache", "", "persisted line pixel cache, reused across runs")
	stroke           = flag.Float64("stroke", 0, "anti-aliased stroke width (0 for single-pixel lines)")
	verbose          = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: threadart [flags] <image>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *verbose {
		weave.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "threadart: %v\n", err)
		os.Exit(1)
	}
}

func run(input string) error {
	col, err := parseColor(*lineColor)
	if err != nil {
		return err
	}
	cfg := weave.Config{
		Nails:               *nails,
		Size:                *size,
		MaxLines:            *lines,
		LineDarkness:        float32(*darkness),
		MinScore:            *minScore,
		ProgressEvery:       *saveEvery,
		Emphasis:            !*noEmphasis,
		Protection:          *protect,
		ProtectionWeight:    *protectPenalty,
		ProtectionThreshold: float32(*protectThreshold),
		LineColor:           col,
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	img, err := pix.Decode(f)
	f.Close()
	if err != nil {
		return err
	}

	var cache *linecache.Cache
	if *cacheFile != "" {
		cache = linecache.LoadOrBuild(*cacheFile, cfg.Ring())
	}
	session, err := weave.NewSession(img, cfg, nil, cache)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := &checkpointer{
		session: session,
		enabled: *saveEvery > 0,
	}
	path, err := weave.NewGreedy(session).Generate(ctx, cfg.Params(), sink)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "threadart: interrupted, writing partial results")
	case err != nil:
		return err
	}

	if err := writeArtifacts(session, path, *output, *pathOut); err != nil {
		return err
	}
	fmt.Printf("generated %d lines, image %s, path %s\n", len(path)-1, *output, *pathOut)
	return nil
}

// checkpointer renders and saves intermediate results between
// iterations. Failures are logged and absorbed: a failed checkpoint
// never aborts the run.
type checkpointer struct {
	session *weave.Session
	enabled bool
}

func (c *checkpointer) Report(p weave.Progress) {
	fmt.Printf("line %d/%d (score %.2f)\n", p.LinesDone, p.Total, p.Score)
	if !c.enabled {
		return
	}
	if err := writeArtifacts(c.session, nil, "threadart_progress.png", "threadart_progress.txt"); err != nil {
		log.Printf("checkpoint: %v", err)
	}
}

// writeArtifacts renders the path (the session's current path when
// nil) and writes the image and nail sequence files.
func writeArtifacts(session *weave.Session, path []int, imgFile, pathFile string) error {
	pts, current := session.Snapshot()
	if path == nil {
		path = current
	}
	cfg := session.Config()
	canvas := render.Image(pts, path, render.Options{
		Size:        cfg.Size,
		Color:       cfg.LineColor,
		StrokeWidth: float32(*stroke),
	})

	imgf, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	if err := render.WritePNG(imgf, canvas); err != nil {
		imgf.Close()
		return err
	}
	if err := imgf.Close(); err != nil {
		return err
	}

	pathf, err := os.Create(pathFile)
	if err != nil {
		return err
	}
	if err := render.WritePath(pathf, path); err != nil {
		pathf.Close()
		return err
	}
	return pathf.Close()
}

func parseColor(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("-line-color must be R,G,B, got %q", s)
	}
	var vals [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("invalid -line-color value %q", p)
		}
		vals[i] = uint8(v)
	}
	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}, nil
}
