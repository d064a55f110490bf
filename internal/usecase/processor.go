package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/logger"
	"onepager-generator/internal/metrics"
	"onepager-generator/internal/model"
	"onepager-generator/internal/normalize"
	"onepager-generator/internal/onepager"
)

// OverflowWarning is attached to exports whose PDF has more than one page.
const OverflowWarning = "content overflows one page"

// Deps are the collaborators of a Processor. Every field is optional; a nil
// PDF renderer disables export and a negative Backoff disables waiting
// between render attempts.
type Deps struct {
	Registry  *onepager.Registry
	Labels    *LabelsResolver
	PDF       PDFRenderer
	Pages     PageCounter
	PDFCache  Cache
	Store     ArtifactStore
	Jobs      JobsRepo
	Hosted    HostedSource
	Suggester ContentSuggester
	Watermark string
	Attempts  int
	Backoff   time.Duration
	Logger    *zap.Logger
}

// Processor renders one-pagers as fragments, preview pages and PDFs.
type Processor struct {
	registry  *onepager.Registry
	labels    *LabelsResolver
	pdf       PDFRenderer
	pages     PageCounter
	cache     Cache
	store     ArtifactStore
	jobs      JobsRepo
	hosted    HostedSource
	suggester ContentSuggester
	watermark string
	attempts  int
	backoff   time.Duration
	log       *zap.Logger
}

func NewProcessor(d Deps) *Processor {
	d.Logger = logger.OrNop(d.Logger)
	if d.Registry == nil {
		d.Registry = onepager.MustRegistry(d.Logger)
	}
	if d.Labels == nil {
		d.Labels = NewLabelsResolver(nil, nil, d.Logger)
	}
	if d.Watermark == "" {
		d.Watermark = onepager.DefaultWatermark
	}
	if d.Attempts < 1 {
		d.Attempts = 3
	}
	if d.Backoff < 0 {
		d.Backoff = 0
	} else if d.Backoff == 0 {
		d.Backoff = time.Second
	}
	return &Processor{
		registry:  d.Registry,
		labels:    d.Labels,
		pdf:       d.PDF,
		pages:     d.Pages,
		cache:     d.PDFCache,
		store:     d.Store,
		jobs:      d.Jobs,
		hosted:    d.Hosted,
		suggester: d.Suggester,
		watermark: d.Watermark,
		attempts:  d.Attempts,
		backoff:   d.Backoff,
		log:       d.Logger,
	}
}

// Templates lists the available templates.
func (p *Processor) Templates() []onepager.Descriptor {
	return p.registry.List()
}

// Template returns the catalogue entry for key.
func (p *Processor) Template(key string) (onepager.Descriptor, error) {
	d, ok := p.registry.Descriptor(key)
	if !ok {
		return d, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, key)
	}
	return d, nil
}

// Render produces the HTML fragment for req. It never fails: unknown
// templates yield the not-found placeholder and bad input degrades to
// empty fields, each reported as a warning.
func (p *Processor) Render(ctx context.Context, req RenderRequest) RenderResult {
	return p.render(ctx, req, kindFragment)
}

// Render kinds used as metric labels.
const (
	kindFragment = "fragment"
	kindPreview  = "preview"
	kindPDF      = "pdf"
)

func (p *Processor) render(ctx context.Context, req RenderRequest, kind string) RenderResult {
	var warnings []string

	issues, err := model.Validate(req.Data)
	if err != nil {
		p.log.Error("schema check unavailable", zap.Error(err))
	}
	for _, i := range issues {
		warnings = append(warnings, "schema: "+i.String())
	}

	norm := normalize.Normalize(req.Data)
	for _, w := range norm.Warnings {
		warnings = append(warnings, w.String())
	}
	doc := norm.Document
	if req.Fit {
		var fitted []string
		doc, fitted = onepager.Fit(doc, onepager.LimitsFor(len(doc.Experience)))
		for _, w := range fitted {
			warnings = append(warnings, "fit: "+w)
		}
	}

	theme, rejected := onepager.ThemeFromColors(req.Hints.Colors)
	warnings = append(warnings, rejected...)

	labels, lw := p.labels.Resolve(ctx, req.Hints.Locale)
	warnings = append(warnings, lw...)

	found := p.registry.Has(req.Template)
	if !found {
		warnings = append(warnings, fmt.Sprintf("unknown template %q", req.Template))
	}

	html := p.registry.Render(req.Template, onepager.View{
		ResumeDocument: doc,
		Labels:         labels,
		Theme:          theme,
	})

	metrics.RendersTotal.WithLabelValues(kind, templateLabel(found, req.Template)).Inc()
	if len(warnings) > 0 {
		metrics.RenderWarnings.WithLabelValues(kind).Add(float64(len(warnings)))
	}
	if warnings == nil {
		warnings = []string{}
	}
	return RenderResult{HTML: html, Warnings: warnings, Document: doc, Found: found}
}

// Preview wraps the rendered fragment in a watermarked page sized by the
// viewport hints.
func (p *Processor) Preview(ctx context.Context, req RenderRequest) (*PreviewResult, error) {
	r := p.render(ctx, req, kindPreview)
	layout := onepager.LayoutFor(req.Hints.ViewportWidth, req.Hints.Mobile)
	page, err := onepager.PreviewPage(r.HTML, onepager.PreviewOptions{
		Layout:    layout,
		Watermark: p.watermark,
		Title:     documentTitle(r.Document),
		Lang:      req.Hints.Locale,
	})
	if err != nil {
		return nil, err
	}
	return &PreviewResult{HTML: page, Layout: layout, Warnings: r.Warnings}, nil
}

// Export renders req to a PDF, stores it and records the job.
func (p *Processor) Export(ctx context.Context, req RenderRequest) (*ExportResult, error) {
	if !p.registry.Has(req.Template) {
		return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, req.Template)
	}
	if p.pdf == nil {
		return nil, fmt.Errorf("%w: no pdf renderer configured", domain.ErrRenderFailed)
	}
	start := time.Now()
	defer func() {
		metrics.ExportDuration.WithLabelValues(req.Template).Observe(time.Since(start).Seconds())
	}()

	r := p.render(ctx, req, kindPDF)
	warnings := r.Warnings
	paper := onepager.PaperFor(req.Hints.Country)
	page, err := onepager.ExportPage(r.HTML, paper, documentTitle(r.Document), req.Hints.Locale)
	if err != nil {
		metrics.ExportsFailed.WithLabelValues(req.Template, "page").Inc()
		return nil, err
	}

	job := &domain.RenderJob{
		ID:        uuid.New(),
		UserID:    req.UserID,
		Template:  req.Template,
		Status:    domain.StatusPending,
		Locale:    req.Hints.Locale,
		Metadata:  map[string]interface{}{"paper": paper.Name},
		CreatedAt: start,
	}

	sum := sha256.Sum256([]byte(page))
	cacheKey := hex.EncodeToString(sum[:])
	pdf, cached := p.cachedPDF(ctx, cacheKey)
	if !cached {
		pdf, err = p.renderWithRetry(ctx, page, paper)
		if err != nil {
			metrics.ExportsFailed.WithLabelValues(req.Template, "render").Inc()
			job.Status = domain.StatusFailed
			job.Metadata["pdf_render_error"] = err.Error()
			p.saveJob(ctx, job)
			return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
		}
		if p.cache != nil {
			if err := p.cache.Set(ctx, cacheKey, pdf); err != nil {
				p.log.Warn("pdf cache store failed", zap.Error(err))
			}
		}
	}

	pages := 1
	if p.pages != nil {
		n, err := p.pages.PageCount(pdf)
		if err != nil {
			p.log.Warn("page count failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		} else {
			pages = n
		}
	}
	metrics.ExportPages.Observe(float64(pages))
	if pages > 1 {
		warnings = append(warnings, OverflowWarning)
	}

	location := ""
	if p.store != nil {
		key := artifactKey(req.UserID, job.ID)
		location, err = p.store.Put(ctx, key, pdf, "application/pdf")
		if err != nil {
			metrics.ExportsFailed.WithLabelValues(req.Template, "store").Inc()
			p.log.Error("store export failed", zap.String("key", key), zap.Error(err))
			warnings = append(warnings, "export could not be stored")
			location = ""
		}
	}

	job.Status = domain.StatusCompleted
	job.Metadata["pages"] = pages
	job.Metadata["cached"] = cached
	job.Metadata["location"] = location
	job.Metadata["warnings"] = warnings
	p.saveJob(ctx, job)

	p.log.Info("export completed",
		zap.String("job_id", job.ID.String()),
		zap.String("template", req.Template),
		zap.Int("pages", pages),
		zap.Bool("cached", cached),
		zap.Int("bytes", len(pdf)),
	)

	return &ExportResult{
		JobID:    job.ID,
		PDF:      pdf,
		Filename: PDFFilename(r.Document.Personal.Name),
		Paper:    paper.Name,
		Pages:    pages,
		Location: location,
		Cached:   cached,
		Warnings: warnings,
	}, nil
}

// HostedPreview renders the preview page of a stored one-pager.
func (p *Processor) HostedPreview(ctx context.Context, id string) (*PreviewResult, error) {
	h, err := p.loadHosted(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Preview(ctx, hostedRequest(h))
}

// HostedExport exports a stored one-pager when its owner allows downloads.
func (p *Processor) HostedExport(ctx context.Context, id string) (*ExportResult, error) {
	h, err := p.loadHosted(ctx, id)
	if err != nil {
		return nil, err
	}
	if !h.DownloadEnabled {
		return nil, domain.ErrDownloadDisabled
	}
	return p.Export(ctx, hostedRequest(h))
}

// Download returns a stored export by the job id Export reported.
func (p *Processor) Download(ctx context.Context, userID, jobID string) ([]byte, error) {
	id, err := uuid.Parse(jobID)
	if err != nil || p.store == nil {
		return nil, domain.ErrArtifactNotFound
	}
	pdf, err := p.store.Get(ctx, artifactKey(userID, id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load export %s: %w", id, err)
	}
	return pdf, nil
}

func (p *Processor) loadHosted(ctx context.Context, id string) (*domain.HostedOnePager, error) {
	if p.hosted == nil || strings.TrimSpace(id) == "" {
		return nil, domain.ErrHostedNotFound
	}
	return p.hosted.Get(ctx, id)
}

func hostedRequest(h *domain.HostedOnePager) RenderRequest {
	return RenderRequest{UserID: h.UserID, Template: h.Template, Data: h.Data, Hints: h.Hints}
}

func (p *Processor) cachedPDF(ctx context.Context, key string) ([]byte, bool) {
	if p.cache == nil {
		return nil, false
	}
	b, ok, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.PDFCacheLookups.WithLabelValues("error").Inc()
		p.log.Warn("pdf cache lookup failed", zap.Error(err))
		return nil, false
	case ok && isPDF(b):
		metrics.PDFCacheLookups.WithLabelValues("hit").Inc()
		return b, true
	default:
		metrics.PDFCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
}

// renderWithRetry prints page with exponential backoff between attempts.
// Output that is not a PDF counts as a failed attempt.
func (p *Processor) renderWithRetry(ctx context.Context, page string, paper onepager.Paper) ([]byte, error) {
	var lastErr error
	for i := 0; i < p.attempts; i++ {
		pdf, err := p.pdf.RenderHTMLToPDF(ctx, page, paper.WidthInches, paper.HeightInches)
		if err == nil {
			if isPDF(pdf) {
				return pdf, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		lastErr = err
		p.log.Warn("render attempt failed", zap.Int("attempt", i+1), zap.Error(err))
		if i < p.attempts-1 {
			select {
			case <-time.After(p.backoff * time.Duration(1<<i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", p.attempts, lastErr)
}

func (p *Processor) saveJob(ctx context.Context, job *domain.RenderJob) {
	if p.jobs == nil {
		return
	}
	job.UpdatedAt = time.Now()
	if err := p.jobs.Save(ctx, job); err != nil {
		p.log.Warn("save render job failed", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

func isPDF(b []byte) bool {
	return bytes.HasPrefix(b, pdfMagic)
}

var pdfMagic = []byte("%PDF")

var unsafeFilename = regexp.MustCompile(`[^\p{L}\p{N}_.-]+`)

// PDFFilename is the download name for a résumé owned by name.
func PDFFilename(name string) string {
	n := strings.Trim(unsafeFilename.ReplaceAllString(strings.TrimSpace(name), "_"), "_")
	if n == "" {
		return "Resume.pdf"
	}
	return n + "_Resume.pdf"
}

func artifactKey(userID string, jobID uuid.UUID) string {
	u := unsafeFilename.ReplaceAllString(strings.TrimSpace(userID), "_")
	if u == "" {
		u = "anonymous"
	}
	return fmt.Sprintf("onepagers/%s/%s.pdf", u, jobID)
}

func documentTitle(doc domain.ResumeDocument) string {
	if doc.Personal.Name != "" {
		return doc.Personal.Name + " - Resume"
	}
	return "Resume"
}

// templateLabel keeps unknown keys out of metric label values.
func templateLabel(found bool, key string) string {
	if found {
		return key
	}
	return "unknown"
}
