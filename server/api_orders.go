package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/myjhye/shop/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/myjhye/shop/internal/domains/orders/application"
	ordersdomain "github.com/myjhye/shop/internal/domains/orders/domain"
	ordersports "github.com/myjhye/shop/internal/domains/orders/ports"
	apierrors "github.com/myjhye/shop/internal/shared/errors"
)

// OrdersAPI implements the order placement and history endpoints.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI wires dependencies.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

type placeOrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type placeOrderRequest struct {
	Items []placeOrderLine `json:"items"`
}

// Post /api/orders
//
// Placement either fully commits or leaves no trace. Insufficient stock and a
// concurrent-writer conflict are reported as distinct problems so clients can
// tell "not enough left" from "try again".
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	var payload placeOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	lines := make([]ordersdomain.PlacementLine, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, ordersdomain.PlacementLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	order, err := api.service.PlaceOrder(c.Request.Context(), user.ID, lines)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders
func (api *OrdersAPI) ListMyOrders(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	page := ordersports.Page{
		Number: parseIntQuery(c, "page", 1),
		Size:   parseIntQuery(c, "size", 0),
	}
	orders, total, err := api.service.ListMyOrders(c.Request.Context(), user.ID, page)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": orderhttpmapper.FromDomainOrders(orders),
		"total": total,
	})
}

// Get /api/orders/:id
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	// Another buyer's order is indistinguishable from a missing one.
	if order.BuyerID != user.ID {
		respondProblem(c, apierrors.NewNotFoundProblem("order", id))
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders/check-purchase
func (api *OrdersAPI) CheckPurchase(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	productID := int64(parseIntQuery(c, "productId", 0))
	if productID <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("productId is required"))
		return
	}
	purchased, err := api.service.HasPurchased(c.Request.Context(), user.ID, productID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchased": purchased})
}

func respondOrderError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrProductNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("product", "requested"))
	case errors.Is(err, ordersports.ErrOrderNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("order", c.Param("id")))
	case errors.Is(err, ordersports.ErrInsufficientStock):
		respondProblem(c, apierrors.ErrInsufficientStock.WithDetail("requested quantity exceeds available stock"))
	case errors.Is(err, ordersports.ErrVersionConflict):
		respondProblem(c, apierrors.ErrConflict.WithDetail("stock changed concurrently, retry the order"))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
