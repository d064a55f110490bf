package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/logger"
	"onepager-generator/internal/usecase"
	infra "onepager-generator/pkg/infrastructure"
)

//go:embed sample.json
var sampleJSON []byte

func main() {
	var (
		outDir  = flag.String("out", "previews", "output directory")
		withPDF = flag.Bool("pdf", true, "also export PDFs and JPEG thumbnails")
		dpi     = flag.Float64("dpi", 96, "thumbnail resolution")
		chrome  = flag.String("chrome", "", "path to the Chrome binary")
	)
	flag.Parse()

	log := logger.New("info", "console")
	defer func() { _ = log.Sync() }()

	var sample map[string]interface{}
	if err := json.Unmarshal(sampleJSON, &sample); err != nil {
		log.Fatal("invalid sample data", zap.Error(err))
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal("create output dir", zap.Error(err))
	}

	fitz := infra.NewFitzInspector()
	p := usecase.NewProcessor(usecase.Deps{
		PDF:    infra.NewChromedpRenderer(*chrome, 60*time.Second),
		Pages:  fitz,
		Logger: log,
	})
	ctx := context.Background()

	ok := 0
	templates := p.Templates()
	for _, d := range templates {
		l := log.With(zap.String("template", d.Key))
		req := usecase.RenderRequest{
			Template: d.Key,
			Data:     sample,
			Hints:    domain.Hints{Country: "US", ViewportWidth: 800},
		}

		page, err := p.Preview(ctx, req)
		if err != nil {
			l.Error("preview failed", zap.Error(err))
			continue
		}
		if err := os.WriteFile(filepath.Join(*outDir, d.Key+".html"), []byte(page.HTML), 0o644); err != nil {
			l.Error("write html failed", zap.Error(err))
			continue
		}

		if *withPDF {
			res, err := p.Export(ctx, req)
			if err != nil {
				l.Error("export failed", zap.Error(err))
				continue
			}
			if err := os.WriteFile(filepath.Join(*outDir, d.Key+".pdf"), res.PDF, 0o644); err != nil {
				l.Error("write pdf failed", zap.Error(err))
				continue
			}
			thumb, err := fitz.Thumbnail(res.PDF, *dpi)
			if err != nil {
				l.Error("thumbnail failed", zap.Error(err))
				continue
			}
			if err := os.WriteFile(filepath.Join(*outDir, d.Key+".jpg"), thumb, 0o644); err != nil {
				l.Error("write thumbnail failed", zap.Error(err))
				continue
			}
			if res.Pages > 1 {
				l.Warn(usecase.OverflowWarning, zap.Int("pages", res.Pages))
			}
		}
		l.Info("preview generated", zap.String("name", d.Name))
		ok++
	}
	log.Info("done", zap.Int("generated", ok), zap.Int("templates", len(templates)))
	if ok != len(templates) {
		os.Exit(1)
	}
}
