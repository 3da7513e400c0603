package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/poemgen/internal/config"
	"github.com/dgallion1/poemgen/internal/corpus"
	"github.com/dgallion1/poemgen/internal/markup"
	"github.com/dgallion1/poemgen/internal/media"
	"github.com/dgallion1/poemgen/internal/paginate"
	"github.com/dgallion1/poemgen/internal/render"
	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
)

const (
	lockFile       = ".poemgen.lock"
	lockRetryDelay = 100 * time.Millisecond
)

// Artifact is one rendered output file.
type Artifact struct {
	Name string // relative to the output directory
	Data []byte
}

// Result summarises a build.
type Result struct {
	Poems     int
	Pages     int
	Artifacts []string
	Version   string
}

// Generator turns a poem source file into the static site.
type Generator struct {
	cfg     config.Config
	log     *slog.Logger
	prober  media.SiblingImageProber
	version string
}

// NewGenerator wires a generator to the media directory under the output
// directory.
func NewGenerator(cfg config.Config, log *slog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		log:    log,
		prober: media.NewDirProber(filepath.Join(cfg.OutputDir, cfg.MediaDir)),
	}
}

// WithVersion pins the cache-busting token, for reproducible builds.
func (g *Generator) WithVersion(v string) *Generator {
	g.version = v
	return g
}

// WithProber replaces the thumbnail prober.
func (g *Generator) WithProber(p media.SiblingImageProber) *Generator {
	g.prober = p
	return g
}

func (g *Generator) options(version string) (render.Options, error) {
	opts := render.Options{
		Title:      g.cfg.SiteTitle,
		BaseURL:    g.cfg.BaseURL,
		Author:     g.cfg.Author,
		MediaDir:   g.cfg.MediaDir,
		Stylesheet: g.cfg.Stylesheet,
		Version:    version,
	}
	if g.cfg.IntroFile != "" {
		src, err := os.ReadFile(g.cfg.IntroFile)
		if err != nil {
			return opts, fmt.Errorf("read intro: %w", err)
		}
		intro, err := render.Intro(src)
		if err != nil {
			return opts, err
		}
		opts.Intro = intro
	}
	return opts, nil
}

// Render produces every artifact for the corpus in memory.
func (g *Generator) Render(c corpus.Corpus, opts render.Options) ([]Artifact, error) {
	pages := paginate.Split(c)
	artifacts := make([]Artifact, 0, len(pages)+2)
	for _, p := range pages {
		data, err := render.Page(p, opts)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Name: p.FileName(), Data: data})
	}

	toc, err := render.TOC(c, g.prober, opts)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{Name: render.TOCFile, Data: toc})

	feed, err := render.Feed(c, opts)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{Name: render.FeedFile, Data: feed})

	return artifacts, nil
}

// Build parses inputPath and writes the site. Nothing is written unless the
// whole corpus parses and every artifact renders.
func (g *Generator) Build(ctx context.Context, inputPath string) (*Result, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	c, err := markup.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", inputPath, err)
	}
	if c.Len() == 0 {
		g.log.Warn("no poems found", "input", inputPath)
	}

	version := g.version
	if version == "" {
		version = NewVersion()
	}
	opts, err := g.options(version)
	if err != nil {
		return nil, err
	}

	artifacts, err := g.Render(c, opts)
	if err != nil {
		return nil, err
	}

	if err := g.write(ctx, artifacts); err != nil {
		return nil, err
	}

	res := &Result{
		Poems:   c.Len(),
		Pages:   paginate.TotalPages(c.Len()),
		Version: version,
	}
	for _, a := range artifacts {
		res.Artifacts = append(res.Artifacts, a.Name)
	}
	g.log.Info("site built",
		"poems", res.Poems,
		"pages", res.Pages,
		"output", g.cfg.OutputDir,
		"version", version,
	)
	return res, nil
}

func (g *Generator) write(ctx context.Context, artifacts []Artifact) error {
	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	lock := flock.New(filepath.Join(g.cfg.OutputDir, lockFile))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire build lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another build holds %s", lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			g.log.Warn("failed to release build lock", "error", err)
		}
	}()

	for _, a := range artifacts {
		path := filepath.Join(g.cfg.OutputDir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.Name, err)
		}
		g.log.Info("wrote artifact", "file", a.Name, "bytes", humanize.Bytes(uint64(len(a.Data))))
	}
	return nil
}
