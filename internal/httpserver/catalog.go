package httpserver

import (
	"net/http"

	catalogsvc "teapos/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.deps.Catalog.LoadCategories(c.Request.Context())})
}

func (h *handler) listMenuItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.deps.Catalog.LoadMenuItems(c.Request.Context(), c.Param("id"))})
}

func (h *handler) listSizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.deps.Catalog.LoadSizes(c.Request.Context())})
}

func (h *handler) listToppings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.deps.Catalog.LoadToppings(c.Request.Context())})
}

func (h *handler) levels(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Catalog.Levels())
}

func (h *handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cat, err := h.deps.Catalog.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handler) updateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cat, err := h.deps.Catalog.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handler) deleteCategory(c *gin.Context) {
	if err := h.deps.Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) createMenuItem(c *gin.Context) {
	var req catalogsvc.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	item, err := h.deps.Catalog.AddMenuItem(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handler) updateMenuItem(c *gin.Context) {
	var req catalogsvc.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	item, err := h.deps.Catalog.UpdateMenuItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) deleteMenuItem(c *gin.Context) {
	if err := h.deps.Catalog.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) createSize(c *gin.Context) {
	var req catalogsvc.OptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	opt, err := h.deps.Catalog.AddSize(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, opt)
}

func (h *handler) updateSize(c *gin.Context) {
	var req catalogsvc.OptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	opt, err := h.deps.Catalog.UpdateSize(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, opt)
}

func (h *handler) deleteSize(c *gin.Context) {
	if err := h.deps.Catalog.DeleteSize(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) createTopping(c *gin.Context) {
	var req catalogsvc.OptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	opt, err := h.deps.Catalog.AddTopping(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, opt)
}

func (h *handler) updateTopping(c *gin.Context) {
	var req catalogsvc.OptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	opt, err := h.deps.Catalog.UpdateTopping(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, opt)
}

func (h *handler) deleteTopping(c *gin.Context) {
	if err := h.deps.Catalog.DeleteTopping(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
