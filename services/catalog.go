package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/models"
	"github.com/restsoft-app/restsoft-pos/utils"
)

// Catalog caches the upstream product and category lists. It is loaded
// once at startup and after that only on an explicit refresh (for
// example right after a product was added); there is no automatic
// retry or backoff, a failed load stays failed until the operator asks
// again.
type Catalog struct {
	client *backend.Client

	mu         sync.Mutex
	generation uint64
	products   []models.Product
	categories []models.Category
	loaded     bool
	lastErr    error
}

func NewCatalog(client *backend.Client) *Catalog {
	return &Catalog{client: client}
}

// Refresh fetches both lists. A refresh that was overtaken by a newer
// one throws its result away instead of clobbering fresher data.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	products, perr := c.client.ListProducts(ctx)
	categories, cerr := c.client.ListCategories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// a newer refresh finished first, this result is stale
		return nil
	}

	if perr != nil {
		c.lastErr = perr
		utils.ErrorLogger.Printf("Catalog refresh failed: %v", perr)
		return perr
	}
	if cerr != nil {
		c.lastErr = cerr
		utils.ErrorLogger.Printf("Category refresh failed: %v", cerr)
		return cerr
	}

	c.products = products
	c.categories = categories
	c.loaded = true
	c.lastErr = nil
	utils.InfoLogger.Printf("Catalog refreshed: %d products, %d categories", len(products), len(categories))
	return nil
}

func (c *Catalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Product(id uint) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (c *Catalog) Categories() []models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryNames is the filter list: the union of the registered
// categories and the categories products actually carry, so a product
// whose category was deleted upstream still shows up somewhere.
func (c *Catalog) CategoryNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool)
	for _, cat := range c.categories {
		name := strings.ToLower(strings.TrimSpace(cat.Name))
		if name != "" {
			seen[name] = true
		}
	}
	for _, p := range c.products {
		name := strings.ToLower(strings.TrimSpace(p.Category))
		if name != "" {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Loaded reports whether any refresh has succeeded; LastError carries
// the retryable error state the UI renders when it has not.
func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

func (c *Catalog) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// CreateProduct registers a product upstream and refreshes the cache.
func (c *Catalog) CreateProduct(ctx context.Context, req backend.CreateProductRequest) (uint, error) {
	id, err := c.client.CreateProduct(ctx, req)
	if err != nil {
		return 0, err
	}
	utils.InfoLogger.Printf("Product %d created: %s", id, req.Nombre)
	_ = c.Refresh(ctx)
	return id, nil
}

func (c *Catalog) UpdateProduct(ctx context.Context, id uint, req backend.UpdateProductRequest) error {
	if err := c.client.UpdateProduct(ctx, id, req); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Product %d updated", id)
	_ = c.Refresh(ctx)
	return nil
}

func (c *Catalog) CreateCategory(ctx context.Context, req backend.CreateCategoryRequest) (uint, error) {
	id, err := c.client.CreateCategory(ctx, req)
	if err != nil {
		return 0, err
	}
	utils.InfoLogger.Printf("Category %d created: %s", id, req.Nombre)
	_ = c.Refresh(ctx)
	return id, nil
}
