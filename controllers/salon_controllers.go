package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/utils"
)

type SalonController struct {
	App *services.App
}

func NewSalonController(app *services.App) *SalonController {
	return &SalonController{App: app}
}

func tableID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid table id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// GetTables -> the whole grid
func (sc *SalonController) GetTables(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Salon tables", gin.H{
		"count":  sc.App.TableCount(),
		"tables": sc.App.Tables(),
	})
}

// GetTable -> one table with its pending lines
func (sc *SalonController) GetTable(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	detail, err := sc.App.TableDetail(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", detail)
}

func (sc *SalonController) OpenTable(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if err := sc.App.OpenTable(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table opened", nil)
}

// UpdateTable -> waiter and party size, either or both
func (sc *SalonController) UpdateTable(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	var body struct {
		Waiter    *string `json:"waiter"`
		PartySize *int    `json:"party_size"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Waiter != nil {
		if err := sc.App.SetTableWaiter(id, *body.Waiter); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if body.PartySize != nil {
		if err := sc.App.SetTablePartySize(id, *body.PartySize); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", nil)
}

func (sc *SalonController) AddItem(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	var body struct {
		ProductID uint   `json:"producto_id" binding:"required"`
		Comment   string `json:"comentario"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sc.App.AddTableItem(id, body.ProductID, body.Comment); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", nil)
}

func (sc *SalonController) RemoveItem(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sc.App.RemoveTableItem(id, uint(productID)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", nil)
}

// AdjustItem -> bump the quantity up or down; zero drops the line
func (sc *SalonController) AdjustItem(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
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
	if err := sc.App.AdjustTableItem(id, uint(productID), body.Delta); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Quantity adjusted", nil)
}

// SubmitOrder -> send the table's pending lines upstream
func (sc *SalonController) SubmitOrder(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	sub, err := sc.App.SubmitTableOrder(c.Request.Context(), id, c.GetString("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order submitted", sub)
}

// GetBill -> read-only account preview, never mutates the table
func (sc *SalonController) GetBill(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	bill, err := sc.App.TableBill(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill preview", bill)
}

// GetOrder -> upstream metadata of the table's submitted order
func (sc *SalonController) GetOrder(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	order, err := sc.App.TableOrderMetadata(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table order", order)
}

func (sc *SalonController) ConfirmBill(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if err := sc.App.ConfirmTableBill(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill confirmed", nil)
}

func (sc *SalonController) CloseTable(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if err := sc.App.CloseTable(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table closed", nil)
}

// Resize -> regenerate the board; shrinking over live tables needs force
func (sc *SalonController) Resize(c *gin.Context) {
	var body struct {
		Count int  `json:"count" binding:"required"`
		Force bool `json:"force"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sc.App.ResizeBoard(body.Count, body.Force); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Salon reconfigured", gin.H{"count": body.Count})
}
