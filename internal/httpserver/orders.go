package httpserver

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"teapos/internal/domain"
	"teapos/internal/receipt"
	ordersvc "teapos/internal/service/order"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status    domain.OrderStatus `json:"status"`
	ChangedBy string             `json:"changedBy"`
}

type paymentStatusRequest struct {
	Status domain.PaymentStatus `json:"status"`
}

func (h *handler) listOrders(c *gin.Context) {
	f := ordersvc.Filter{Status: domain.OrderStatus(c.Query("status"))}
	var err error
	if f.Limit, err = intQuery(c, "limit", 50); err != nil {
		badRequest(c, "limit must be a number")
		return
	}
	if f.Offset, err = intQuery(c, "offset", 0); err != nil {
		badRequest(c, "offset must be a number")
		return
	}
	orders, err := h.deps.Orders.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"limit":   f.Limit,
		"offset":  f.Offset,
		"count":   len(orders),
		"results": orders,
	})
}

func (h *handler) getOrder(c *gin.Context) {
	o, err := h.deps.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handler) orderHistory(c *gin.Context) {
	logs, err := h.deps.Orders.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": logs})
}

func (h *handler) orderReceipt(c *gin.Context) {
	o, err := h.deps.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := receipt.Render(&buf, o, h.deps.Receipt); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (h *handler) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = c.GetHeader("X-Changed-By")
	}
	o, err := h.deps.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, changedBy)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handler) updatePaymentStatus(c *gin.Context) {
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := h.deps.Orders.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// salesSummary accepts RFC 3339 timestamps or plain dates for from and to.
func (h *handler) salesSummary(c *gin.Context) {
	from, err := timeQuery(c, "from")
	if err != nil {
		badRequest(c, "from must be a date or RFC 3339 timestamp")
		return
	}
	to, err := timeQuery(c, "to")
	if err != nil {
		badRequest(c, "to must be a date or RFC 3339 timestamp")
		return
	}
	s, err := h.deps.Orders.Summary(c.Request.Context(), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func timeQuery(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}
