// Package pdfbatch generates PDF artifacts for activity translations. It
// runs as an offline, sequential job; a failed render is logged and the
// batch moves on, so one broken activity never blocks the rest.
package pdfbatch

import (
	"bytes"
	"path"

	"github.com/apex/log"
	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/media"
	"github.com/astroedu/astroedu/pkg/renderer"
	"github.com/pkg/errors"
)

// pdfDir is where generated artifacts live inside the media store.
const pdfDir = "pdf"

// Options selects which translations to generate. At least one of NewOnly
// or Code must be set.
type Options struct {
	// Code restricts the run to one activity (all of its translations).
	Code string
	// Lang restricts either selection to one language.
	Lang string
	// NewOnly selects translations of published activities that have no
	// PDF yet, and skips any translation that already has one.
	NewOnly bool
}

func (o Options) Validate() error {
	if !o.NewOnly && o.Code == "" {
		return errors.New("either select --new or enter --code or both")
	}
	return nil
}

// Report summarizes a batch run.
type Report struct {
	Selected  int
	Generated int
	Skipped   int
	Failed    int
}

type Batch struct {
	translationStor stor.ActivityTranslationStor
	renderer        renderer.Renderer
	mediaStore      media.Store
}

func NewBatch(translationStor stor.ActivityTranslationStor, r renderer.Renderer, mediaStore media.Store) *Batch {
	return &Batch{
		translationStor: translationStor,
		renderer:        r,
		mediaStore:      mediaStore,
	}
}

// Run selects the translations for the options and renders them one at a
// time. Selection failures abort the run; per-item render or save
// failures are logged and counted, nothing already saved is rolled back.
func (b *Batch) Run(opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	translations, err := b.selectTranslations(opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Selected: len(translations)}
	log.Infof("Generating PDFs for %d activity translations", len(translations))

	for i := range translations {
		tr := &translations[i]
		code := b.activityCode(tr)

		if opts.NewOnly && tr.HasPDF() {
			log.Infof("Skipping %s in %s", code, tr.LanguageCode)
			report.Skipped++
			continue
		}

		if err := b.generateOne(tr, code); err != nil {
			log.Errorf("Failed to create %s in %s: %s", code, tr.LanguageCode, err)
			report.Failed++
			continue
		}

		log.Infof("Written %s", path.Base(tr.PDF))
		report.Generated++
	}

	return report, nil
}

func (b *Batch) selectTranslations(opts Options) ([]aemodel.ActivityTranslation, error) {
	if opts.Code != "" {
		translations, err := b.translationStor.ListTranslationsForCode(opts.Code, opts.Lang)
		if err != nil {
			return nil, errors.Wrapf(err, "activity %s not found", opts.Code)
		}
		return translations, nil
	}

	return b.translationStor.ListTranslationsMissingPDF(opts.Lang)
}

func (b *Batch) generateOne(tr *aemodel.ActivityTranslation, code string) error {
	pdfBytes, err := b.renderer.RenderActivityPDF(code, tr.LanguageCode)
	if err != nil {
		return err
	}

	// Replace any previous artifact before saving the new one.
	if tr.HasPDF() {
		if err := b.mediaStore.Delete(tr.PDF); err != nil {
			return err
		}
	}

	key := path.Join(pdfDir, tr.PDFFilename(code))
	if key, err = b.mediaStore.Save(key, bytes.NewReader(pdfBytes)); err != nil {
		return err
	}

	return b.translationStor.SetTranslationPDF(tr, key)
}

func (b *Batch) activityCode(tr *aemodel.ActivityTranslation) string {
	if tr.Activity != nil {
		return tr.Activity.Code
	}
	return ""
}
