package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/myjhye/shop/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/myjhye/shop/internal/domains/catalog/application"
	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"
	apierrors "github.com/myjhye/shop/internal/shared/errors"
)

// ProductsAPI implements the catalog endpoints.
type ProductsAPI struct {
	service catalogports.Service
}

// NewProductsAPI wires dependencies.
func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// Get /api/products
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	filter := catalogports.Filter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		SellerID: int64(parseIntQuery(c, "sellerId", 0)),
		Page: catalogports.Page{
			Number: parseIntQuery(c, "page", 1),
			Size:   parseIntQuery(c, "size", 0),
		},
	}
	products, total, err := api.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": cataloghttpmapper.FromDomainProducts(products),
		"total": total,
	})
}

// Get /api/products/:id
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Post /api/products
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	var payload productRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), user.ID, catalogports.CreateProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		Images:      payload.Images,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(product))
}

// Put /api/products/:id
func (api *ProductsAPI) UpdateProduct(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload productRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), user.ID, id, catalogports.UpdateProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		Images:      payload.Images,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Delete /api/products/:id
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), user.ID, id); err != nil {
		respondProductError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondProductError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrProductNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("product", c.Param("id")))
	case errors.Is(err, catalogports.ErrVersionConflict):
		respondProblem(c, apierrors.ErrConflict.WithDetail("product was modified concurrently, re-read and retry"))
	case errors.Is(err, catalogports.ErrProductInUse):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, catalogapp.ErrNotOwner):
		respondProblem(c, apierrors.ErrForbidden.WithDetail(err.Error()))
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
