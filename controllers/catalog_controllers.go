package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/utils"
)

type CatalogController struct {
	App *services.App
}

func NewCatalogController(app *services.App) *CatalogController {
	return &CatalogController{App: app}
}

// GetProducts -> cached catalog, optionally filtered by category
func (cc *CatalogController) GetProducts(c *gin.Context) {
	if !cc.App.Catalog.Loaded() {
		if lastErr := cc.App.Catalog.LastError(); lastErr != nil {
			respondServiceError(c, lastErr)
			return
		}
	}
	products := cc.App.Catalog.Products()
	if cat := strings.ToLower(strings.TrimSpace(c.Query("categoria"))); cat != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.ToLower(p.Category) == cat {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetCategories -> registered categories plus the names the filter bar
// shows
func (cc *CatalogController) GetCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of categories", gin.H{
		"categories": cc.App.Catalog.Categories(),
		"names":      cc.App.Catalog.CategoryNames(),
	})
}

// Refresh -> explicit reload after an upstream change or a failed boot
func (cc *CatalogController) Refresh(c *gin.Context) {
	if err := cc.App.Catalog.Refresh(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Catalog refreshed", gin.H{
		"products": len(cc.App.Catalog.Products()),
	})
}

func (cc *CatalogController) CreateProduct(c *gin.Context) {
	var req backend.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	id, err := cc.App.Catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", gin.H{"producto_id": id})
}

func (cc *CatalogController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req backend.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := cc.App.Catalog.UpdateProduct(c.Request.Context(), uint(id), req); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", nil)
}

func (cc *CatalogController) CreateCategory(c *gin.Context) {
	var req backend.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	id, err := cc.App.Catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", gin.H{"categoria_id": id})
}
