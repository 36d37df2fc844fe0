package httpserver

import (
	"net/http"

	cartsvc "jugadubazar/internal/service/cart"
	checkoutsvc "jugadubazar/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

func listMaterialsHandler(svc materialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(items))
	}
}

func getMaterialHandler(svc materialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := svc.Get(c.Request.Context(), c.Param("materialId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func listCategoriesHandler(svc categoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(list))
	}
}

func createCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svc.Create(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCartResponse(*v))
	}
}

func getCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := cartFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusNotFound, errorResponse{Error: "cart not found"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(*v))
	}
}

func addItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c, err)
			return
		}
		v, err := svc.AddItem(c.Request.Context(), c.Param("cartId"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(*v))
	}
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func updateItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		v, err := svc.UpdateQuantity(c.Request.Context(), c.Param("cartId"), c.Param("productId"), *req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(*v))
	}
}

func removeItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svc.RemoveItem(c.Request.Context(), c.Param("cartId"), c.Param("productId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(*v))
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svc.Clear(c.Request.Context(), c.Param("cartId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(*v))
	}
}

func quoteHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := svc.Quote(c.Request.Context(), c.Param("cartId"), c.Query("strategy"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

func listInstructionsHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.Instructions(c.Request.Context(), c.Param("cartId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(list))
	}
}

func updateInstructionsHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.InstructionsInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c, err)
			return
		}
		updated, err := svc.UpdateInstructions(c.Request.Context(), c.Param("cartId"), c.Param("supplierKey"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func checkoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c, err)
			return
		}
		conf, err := svc.Checkout(c.Request.Context(), c.Param("cartId"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, conf)
	}
}

func getOrderHandler(orders orderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.GetByID(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
