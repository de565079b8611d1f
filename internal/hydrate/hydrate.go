// Package hydrate resolves the media ids persisted on projects and
// retouches into full media rows. Resolution is lazy: nothing is queried
// until a relation is read, and the result is cached on the wrapper until
// the owning row is mutated and the wrapper invalidated.
//
// Tolerance is deliberately asymmetric. A project's image list is optional
// and plural, so ids that no longer resolve are dropped silently. A
// retouche's before/after images are mandatory and singular, so a missing
// row is referential corruption and surfaces as ErrBrokenReference.
package hydrate

import (
	"errors"
	"fmt"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
)

// ErrBrokenReference means a required media reference no longer resolves.
var ErrBrokenReference = errors.New("broken media reference")

// Hydrator resolves media references through the media store.
type Hydrator struct {
	media *store.MediaStore
}

func New(media *store.MediaStore) *Hydrator {
	return &Hydrator{media: media}
}

// SEO is a resolved SEO sub-record: keywords decoded, open-graph image
// hydrated when it still resolves.
type SEO struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Keywords    []string      `json:"keywords"`
	OGImage     *models.Media `json:"og_image,omitempty"`
}

// resolveSEO hydrates an embedded SEO sub-record. The OG image is optional:
// absent or unresolvable ids both yield no image. Storage faults propagate.
func (h *Hydrator) resolveSEO(f *models.SEOFields) (*SEO, error) {
	seo := &SEO{
		Title:       f.SEOTitle,
		Description: f.SEODescription,
		Keywords:    f.Keywords(),
	}
	if f.SEOOGImageID != "" {
		m, err := h.media.FindByID(f.SEOOGImageID)
		switch {
		case err == nil:
			seo.OGImage = m
		case errors.Is(err, store.ErrNotFound):
			// tolerated, the image simply disappears from the view
		default:
			return nil, err
		}
	}
	return seo, nil
}

// Project wraps a project row with cached relation views.
type Project struct {
	*models.Project

	h            *Hydrator
	images       []models.Media
	imagesLoaded bool
	seo          *SEO
}

// Project wraps p for hydration. The wrapper caches resolved relations for
// the lifetime of the in-memory row; callers mutating the row through the
// store must Invalidate (or rewrap) afterwards.
func (h *Hydrator) Project(p *models.Project) *Project {
	return &Project{Project: p, h: h}
}

// Images resolves the persisted id list on first call and caches the
// result. Unresolvable ids are dropped; an unparsable list hydrates empty.
func (p *Project) Images() ([]models.Media, error) {
	if p.imagesLoaded {
		return p.images, nil
	}
	media, err := p.h.media.FindByIDs(p.ImageIDs())
	if err != nil {
		return nil, err
	}
	p.images = media
	p.imagesLoaded = true
	return p.images, nil
}

// SetImages assigns the relation directly: the id list is re-serialized on
// the wrapped row for persistence and the cache refreshed in place.
func (p *Project) SetImages(media []models.Media) {
	ids := make([]string, len(media))
	for i := range media {
		ids[i] = media[i].ID
	}
	p.ImagesJSON = models.EncodeImageIDs(ids)
	p.images = media
	p.imagesLoaded = true
	p.seo = nil
}

// SEO resolves the embedded SEO sub-record, caching the view.
func (p *Project) SEO() (*SEO, error) {
	if p.seo != nil {
		return p.seo, nil
	}
	seo, err := p.h.resolveSEO(&p.SEOFields)
	if err != nil {
		return nil, err
	}
	p.seo = seo
	return p.seo, nil
}

// Invalidate clears every cached relation view. Call after any mutation of
// the underlying row that touches the relation columns.
func (p *Project) Invalidate() {
	p.images = nil
	p.imagesLoaded = false
	p.seo = nil
}

// Retouche wraps a retouche row with cached relation views.
type Retouche struct {
	*models.Retouche

	h      *Hydrator
	before *models.Media
	after  *models.Media
	seo    *SEO
}

// Retouche wraps r for hydration.
func (h *Hydrator) Retouche(r *models.Retouche) *Retouche {
	return &Retouche{Retouche: r, h: h}
}

func (r *Retouche) requiredImage(cache **models.Media, id, which string) (*models.Media, error) {
	if *cache != nil {
		return *cache, nil
	}
	m, err := r.h.media.FindByID(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s image %s", ErrBrokenReference, which, id)
	}
	if err != nil {
		return nil, err
	}
	*cache = m
	return m, nil
}

// BeforeImage resolves the mandatory before image. A missing row is
// corruption and fails loudly.
func (r *Retouche) BeforeImage() (*models.Media, error) {
	return r.requiredImage(&r.before, r.BeforeImageID, "before")
}

// AfterImage resolves the mandatory after image.
func (r *Retouche) AfterImage() (*models.Media, error) {
	return r.requiredImage(&r.after, r.AfterImageID, "after")
}

// SEO resolves the embedded SEO sub-record, caching the view.
func (r *Retouche) SEO() (*SEO, error) {
	if r.seo != nil {
		return r.seo, nil
	}
	seo, err := r.h.resolveSEO(&r.SEOFields)
	if err != nil {
		return nil, err
	}
	r.seo = seo
	return r.seo, nil
}

// Invalidate clears every cached relation view.
func (r *Retouche) Invalidate() {
	r.before = nil
	r.after = nil
	r.seo = nil
}
