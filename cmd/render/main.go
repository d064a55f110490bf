package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/logger"
	"onepager-generator/internal/model"
	"onepager-generator/internal/usecase"
	infra "onepager-generator/pkg/infrastructure"
)

func main() {
	var (
		in       = flag.String("in", "resume.json", "résumé JSON file")
		tpl      = flag.String("template", "classic", "template key")
		out      = flag.String("out", "-", "HTML output file, - for stdout")
		pdfOut   = flag.String("pdf", "", "also export a PDF to this file")
		preview  = flag.Bool("preview", false, "write a full preview page instead of the fragment")
		strict   = flag.Bool("strict", false, "fail when the input does not match the schema")
		fit      = flag.Bool("fit", false, "trim content to one-page character budgets")
		locale   = flag.String("locale", "", "heading locale, e.g. es or pt-BR")
		country  = flag.String("country", "", "country code used to pick the paper size")
		width    = flag.Int("width", 0, "viewport width in px for the preview layout")
		primary  = flag.String("primary", "", "primary color override (#rrggbb)")
		accent   = flag.String("accent", "", "accent color override (#rrggbb)")
		chrome   = flag.String("chrome", "", "path to the Chrome binary")
		logLevel = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	log := logger.New(*logLevel, "console")
	defer func() { _ = log.Sync() }()

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(2)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}
	if *strict {
		if err := model.ValidateMap(data); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	p := usecase.NewProcessor(usecase.Deps{
		PDF:    infra.NewChromedpRenderer(*chrome, 60*time.Second),
		Pages:  infra.NewFitzInspector(),
		Logger: log,
	})

	req := usecase.RenderRequest{
		Template: *tpl,
		Data:     data,
		Fit:      *fit,
		Hints: domain.Hints{
			Colors:        domain.Colors{Primary: *primary, Accent: *accent},
			Locale:        *locale,
			Country:       *country,
			ViewportWidth: *width,
		},
	}
	ctx := context.Background()

	var html string
	var warnings []string
	if *preview {
		res, err := p.Preview(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preview: %v\n", err)
			os.Exit(1)
		}
		html, warnings = res.HTML, res.Warnings
	} else {
		res := p.Render(ctx, req)
		html, warnings = res.HTML, res.Warnings
	}
	for _, w := range warnings {
		log.Warn("render warning", zap.String("warning", w))
	}

	if *out == "-" {
		fmt.Print(html)
	} else {
		if err := os.WriteFile(*out, []byte(html), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write html: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
	}

	if *pdfOut != "" {
		res, err := p.Export(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfOut, res.PDF, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write pdf: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%s, %d page(s))\n", *pdfOut, res.Paper, res.Pages)
	}
}
