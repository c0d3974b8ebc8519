package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/utils"
)

// OrderController serves the delivery and counter composers plus the
// shared order history.
type OrderController struct {
	App *services.App
}

func NewOrderController(app *services.App) *OrderController {
	return &OrderController{App: app}
}

// GetOrders -> upstream history, optionally filtered by origin
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.App.Orders(c.Request.Context(), c.Query("origin"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetCart(c *gin.Context) {
	view, err := oc.App.CartState(c.Param("origin"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", view)
}

func (oc *OrderController) AddCartItem(c *gin.Context) {
	var body struct {
		ProductID uint   `json:"producto_id" binding:"required"`
		Comment   string `json:"comentario"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := oc.App.AddCartItem(c.Param("origin"), body.ProductID, body.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", view)
}

func (oc *OrderController) RemoveCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := oc.App.RemoveCartItem(c.Param("origin"), uint(productID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", view)
}

func (oc *OrderController) AdjustCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var body struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := oc.App.AdjustCartItem(c.Param("origin"), uint(productID), body.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Quantity adjusted", view)
}

func (oc *OrderController) ClearCart(c *gin.Context) {
	if err := oc.App.ClearCart(c.Param("origin")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}

// SetDeliveryDetails -> the customer/address form, saved as typed
func (oc *OrderController) SetDeliveryDetails(c *gin.Context) {
	var dc services.DeliveryContext
	if err := c.ShouldBindJSON(&dc); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	oc.App.SetDeliveryDetails(dc)
	utils.RespondJSON(c, http.StatusOK, "Delivery details saved", nil)
}

func (oc *OrderController) SubmitDelivery(c *gin.Context) {
	sub, err := oc.App.SubmitDelivery(c.Request.Context(), c.GetString("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order submitted", sub)
}

func (oc *OrderController) SetCounterDetails(c *gin.Context) {
	var cc services.CounterContext
	if err := c.ShouldBindJSON(&cc); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	oc.App.SetCounterDetails(cc)
	utils.RespondJSON(c, http.StatusOK, "Counter details saved", nil)
}

func (oc *OrderController) SubmitCounter(c *gin.Context) {
	sub, err := oc.App.SubmitCounter(c.Request.Context(), c.GetString("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order submitted", sub)
}
