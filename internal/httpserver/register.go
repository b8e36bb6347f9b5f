package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"teapos/internal/checkout"
	"teapos/internal/pricing"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	MenuItemID string   `json:"menuItemId"`
	SizeID     string   `json:"sizeId"`
	Sugar      string   `json:"sugar"`
	Ice        string   `json:"ice"`
	ToppingIDs []string `json:"toppingIds"`
	Quantity   int      `json:"quantity"`
}

func sessionID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("sessionID"))
	if id == "" {
		badRequest(c, "session id required")
		return "", false
	}
	return id, true
}

func (h *handler) getCart(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.deps.Carts.Get(c.Request.Context(), id).View())
}

func (h *handler) addCartItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	in, err := h.resolve(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	item, err := pricing.BuildLineItem(in, h.deps.Catalog.Levels())
	if err != nil {
		h.fail(c, err)
		return
	}
	view, err := h.deps.Carts.Get(ctx, id).Add(ctx, item)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// resolve turns catalog ids into the options the builder prices.
func (h *handler) resolve(ctx context.Context, req addItemRequest) (pricing.BuildInput, error) {
	item, err := h.deps.Catalog.MenuItem(ctx, req.MenuItemID)
	if err != nil {
		return pricing.BuildInput{}, err
	}
	in := pricing.BuildInput{
		MenuItem: item,
		Sugar:    req.Sugar,
		Ice:      req.Ice,
		Quantity: req.Quantity,
	}
	if req.SizeID != "" {
		size, err := h.deps.Catalog.Size(ctx, req.SizeID)
		if err != nil {
			return pricing.BuildInput{}, err
		}
		in.Size = &size
	}
	for _, tid := range req.ToppingIDs {
		t, err := h.deps.Catalog.Topping(ctx, tid)
		if err != nil {
			return pricing.BuildInput{}, err
		}
		in.Toppings = append(in.Toppings, t)
	}
	return in, nil
}

func (h *handler) removeCartItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "index must be a number")
		return
	}
	ctx := c.Request.Context()
	view, err := h.deps.Carts.Get(ctx, id).RemoveAt(ctx, index)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) clearCart(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	view, err := h.deps.Carts.Get(ctx, id).Clear(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) getCheckout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.deps.Checkouts.Get(c.Request.Context(), id).State())
}

// checkout runs the submission detached from the request so a dropped
// connection cannot cancel an order mid-flight.
func (h *handler) checkout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	state, err := h.deps.Checkouts.Get(ctx, id).Checkout(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	switch state.Phase {
	case checkout.PhaseSucceeded:
		c.JSON(http.StatusCreated, state)
	case checkout.PhaseFailed:
		c.JSON(statusFor(state.Err), gin.H{"error": state.Reason, "checkout": state})
	default:
		c.JSON(http.StatusAccepted, state)
	}
}

func (h *handler) dismissCheckout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	state, err := h.deps.Checkouts.Get(c.Request.Context(), id).Dismiss()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

