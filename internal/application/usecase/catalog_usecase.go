// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	catalogdom "m3dshop/internal/domain/catalog"
	"m3dshop/internal/infra/images"
)

// CacheStatus tells the handler layer where a page payload came from, for
// the X-Cache response header.
type CacheStatus string

const (
	CachePrecomputed CacheStatus = "PRECOMPUTED"
	CacheHit         CacheStatus = "HIT"
	CacheMiss        CacheStatus = "MISS"
)

// pageCacheTTL bounds how stale a live-computed listing page may get.
const pageCacheTTL = 5 * time.Minute

// ProductImages is the per-product image set the listing ships alongside
// each product: every discovered path with its blur placeholder, plus the
// resolved hero image.
type ProductImages struct {
	ProductID    int64    `json:"productId"`
	Paths        []string `json:"paths"`
	BlurDataURLs []string `json:"blurDataURLs"`
	MainPath     string   `json:"mainPath,omitempty"`
	MainBlur     string   `json:"mainBlur,omitempty"`
}

// ProductPage is one listing page payload.
type ProductPage struct {
	Products   []catalogdom.Product `json:"products"`
	Images     []ProductImages      `json:"images"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
}

// precomputedCache mirrors the products-cache.json layout written by the
// precompute command.
type precomputedCache struct {
	GeneratedAt time.Time              `json:"generatedAt"`
	PageSize    int                    `json:"pageSize"`
	Pages       map[string]ProductPage `json:"pages"`
}

type cachedPage struct {
	page      *ProductPage
	expiresAt time.Time
}

// CatalogUsecase serves listing pages and product details. Page payloads
// resolve in order: the precomputed cache file, the in-memory TTL cache,
// then a live DB + filesystem scan.
type CatalogUsecase struct {
	repo      catalogdom.Repository
	publicDir string
	pageSize  int
	clock     Clock

	mu          sync.Mutex
	pages       map[string]cachedPage
	precomputed *precomputedCache
}

func NewCatalogUsecase(repo catalogdom.Repository, publicDir string) *CatalogUsecase {
	u := &CatalogUsecase{
		repo:      repo,
		publicDir: publicDir,
		pageSize:  catalogdom.DefaultPageSize,
		clock:     systemClock{},
		pages:     map[string]cachedPage{},
	}
	u.loadPrecomputed()
	return u
}

func (u *CatalogUsecase) loadPrecomputed() {
	path := filepath.Join(u.publicDir, "products-cache.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[catalog_usecase] WARN reading %s: %v", path, err)
		}
		return
	}
	var pc precomputedCache
	if err := json.Unmarshal(raw, &pc); err != nil {
		log.Printf("[catalog_usecase] WARN invalid products-cache.json, ignoring: %v", err)
		return
	}
	u.precomputed = &pc
	log.Printf("[catalog_usecase] Loaded precomputed catalog cache (%d pages)", len(pc.Pages))
}

// GetPage returns the listing page (1-based; pages below 1 clamp to 1)
// together with where the payload came from.
func (u *CatalogUsecase) GetPage(ctx context.Context, page int) (*ProductPage, CacheStatus, error) {
	if page < 1 {
		page = 1
	}
	key := fmt.Sprintf("products:page:%d", page)

	u.mu.Lock()
	if u.precomputed != nil {
		if p, ok := u.precomputed.Pages[fmt.Sprintf("%d", page)]; ok {
			u.mu.Unlock()
			return &p, CachePrecomputed, nil
		}
	}
	if c, ok := u.pages[key]; ok && u.clock.Now().Before(c.expiresAt) {
		u.mu.Unlock()
		return c.page, CacheHit, nil
	}
	u.mu.Unlock()

	p, err := u.buildPage(ctx, page)
	if err != nil {
		return nil, CacheMiss, err
	}

	u.mu.Lock()
	u.pages[key] = cachedPage{page: p, expiresAt: u.clock.Now().Add(pageCacheTTL)}
	u.mu.Unlock()
	return p, CacheMiss, nil
}

func (u *CatalogUsecase) buildPage(ctx context.Context, page int) (*ProductPage, error) {
	// The repository pages zero-based; the API is one-based.
	products, err := u.repo.List(ctx, page-1, u.pageSize)
	if err != nil {
		return nil, err
	}
	total, err := u.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalPages := (total + u.pageSize - 1) / u.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	imgs := make([]ProductImages, 0, len(products))
	for _, p := range products {
		imgs = append(imgs, u.productImages(p.ID))
	}
	return &ProductPage{Products: products, Images: imgs, Page: page, TotalPages: totalPages}, nil
}

// productImages scans {publicDir}/products/{id}. A missing directory or an
// undecodable image degrades to empty placeholders, never to an error: the
// listing renders without blur rather than not at all.
func (u *CatalogUsecase) productImages(productID int64) ProductImages {
	out := ProductImages{ProductID: productID, Paths: []string{}, BlurDataURLs: []string{}}

	dir := filepath.Join(u.publicDir, "products", fmt.Sprintf("%d", productID))
	m, err := images.ReadManifest(dir)
	if err != nil {
		if m, err = images.GenerateManifest(dir); err != nil {
			return out
		}
	}

	for _, name := range m.Images {
		rel := fmt.Sprintf("/products/%d/%s", productID, name)
		blur, berr := images.BlurDataURL(filepath.Join(dir, name))
		if berr != nil {
			blur = ""
		}
		out.Paths = append(out.Paths, rel)
		out.BlurDataURLs = append(out.BlurDataURLs, blur)
		if name == m.Main {
			out.MainPath = rel
			out.MainBlur = blur
		}
	}
	if out.MainPath == "" && len(out.Paths) > 0 {
		out.MainPath = out.Paths[0]
		out.MainBlur = out.BlurDataURLs[0]
	}
	return out
}

// GetBySlug returns the detail payload for one product, including its
// images. catalog.ErrNotFound passes through untouched.
func (u *CatalogUsecase) GetBySlug(ctx context.Context, slug string) (*catalogdom.Product, *ProductImages, error) {
	p, err := u.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	imgs := u.productImages(p.ID)
	return p, &imgs, nil
}

// Precompute regenerates every product's manifest.json and writes
// products-cache.json with all listing pages, blur placeholders included.
// Run from cmd/precompute after images or rows change.
func (u *CatalogUsecase) Precompute(ctx context.Context) error {
	total, err := u.repo.CountAll(ctx)
	if err != nil {
		return err
	}
	totalPages := (total + u.pageSize - 1) / u.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	pc := precomputedCache{
		GeneratedAt: u.clock.Now(),
		PageSize:    u.pageSize,
		Pages:       map[string]ProductPage{},
	}
	for page := 1; page <= totalPages; page++ {
		p, err := u.buildPage(ctx, page)
		if err != nil {
			return err
		}
		for _, prod := range p.Products {
			u.writeManifestIfMissing(prod.ID)
		}
		pc.Pages[fmt.Sprintf("%d", page)] = *p
	}

	raw, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(u.publicDir, "products-cache.json")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return err
	}
	log.Printf("[catalog_usecase] wrote %s (%d pages)", path, len(pc.Pages))

	u.mu.Lock()
	u.precomputed = &pc
	u.mu.Unlock()
	return nil
}

func (u *CatalogUsecase) writeManifestIfMissing(productID int64) {
	dir := filepath.Join(u.publicDir, "products", fmt.Sprintf("%d", productID))
	if _, err := images.ReadManifest(dir); err == nil {
		return
	}
	m, err := images.GenerateManifest(dir)
	if err != nil {
		return
	}
	if err := images.WriteManifest(dir, m); err != nil {
		log.Printf("[catalog_usecase] WARN writing manifest for product %d: %v", productID, err)
	}
}

// InvalidateCache drops the in-memory pages (test hook and admin lever).
func (u *CatalogUsecase) InvalidateCache() {
	u.mu.Lock()
	u.pages = map[string]cachedPage{}
	u.mu.Unlock()
}
