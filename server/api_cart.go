package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/myjhye/shop/internal/domains/cart/adapters/http/mapper"
	cartapp "github.com/myjhye/shop/internal/domains/cart/application"
	cartdomain "github.com/myjhye/shop/internal/domains/cart/domain"
	cartports "github.com/myjhye/shop/internal/domains/cart/ports"
	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"
	apierrors "github.com/myjhye/shop/internal/shared/errors"
)

// CartAPI implements the cart endpoints. The catalog service joins product
// details into cart listings.
type CartAPI struct {
	service cartports.Service
	catalog catalogports.Service
}

// NewCartAPI wires dependencies.
func NewCartAPI(service cartports.Service, catalog catalogports.Service) CartAPI {
	return CartAPI{service: service, catalog: catalog}
}

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Get /api/cart
func (api *CartAPI) ListCart(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	items, err := api.service.ListCart(c.Request.Context(), user.ID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": api.toViews(c, items)})
}

// Post /api/cart
func (api *CartAPI) AddToCart(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	var payload addToCartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := api.service.AddToCart(c.Request.Context(), user.ID, payload.ProductID, payload.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.toView(c, item))
}

// Patch /api/cart/:itemId
func (api *CartAPI) UpdateCartItem(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload updateCartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := api.service.UpdateQuantity(c.Request.Context(), user.ID, itemID, payload.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.toView(c, item))
}

// Delete /api/cart/:itemId
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := api.service.RemoveItem(c.Request.Context(), user.ID, itemID); err != nil {
		respondCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *CartAPI) toViews(c *gin.Context, items []*cartdomain.CartItem) []carthttpmapper.CartItem {
	views := make([]carthttpmapper.CartItem, 0, len(items))
	for _, item := range items {
		views = append(views, api.toView(c, item))
	}
	return views
}

// toView joins the live product name and price into the cart entry. A product
// deleted since it was carted is shown bare rather than failing the listing.
func (api *CartAPI) toView(c *gin.Context, item *cartdomain.CartItem) carthttpmapper.CartItem {
	view := carthttpmapper.FromDomainCartItem(item)
	if api.catalog == nil {
		return view
	}
	product, err := api.catalog.GetProduct(c.Request.Context(), item.ProductID)
	if err != nil {
		return view
	}
	view.ProductName = product.Name
	view.ProductPrice = product.Price
	return view
}

func respondCartError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, cartports.ErrCartItemNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("cart item", c.Param("itemId")))
	case errors.Is(err, cartapp.ErrProductNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("product", "requested"))
	case errors.Is(err, cartapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
