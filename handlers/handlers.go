package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"bookstore-service/internal/auth"
	"bookstore-service/internal/orders"
	"bookstore-service/internal/products"
	"bookstore-service/internal/uploads"
	"bookstore-service/internal/users"
	"bookstore-service/middleware"
)

type Handler struct {
	o  *orders.Service
	p  *products.Conf
	u  *users.Conf
	up *uploads.Conf

	keys          *auth.Keys
	webhookSecret string
	validate      *validator.Validate
}

func NewHandler(o *orders.Service, p *products.Conf, u *users.Conf, up *uploads.Conf, keys *auth.Keys, webhookSecret string) *Handler {
	return &Handler{
		o:             o,
		p:             p,
		u:             u,
		up:            up,
		keys:          keys,
		webhookSecret: webhookSecret,
		validate:      validator.New(),
	}
}

func API(endpointPrefix string, h *Handler) *gin.Engine {
	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	m, err := middleware.NewMid(h.keys)
	if err != nil {
		panic(err)
	}

	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)

	v1 := r.Group(endpointPrefix)
	{
		v1.POST("/signup", h.Signup)
		v1.POST("/login", h.Login)
		v1.GET("/products/list", h.ListProducts)
		v1.GET("/products/view/:id", h.GetProduct)
		v1.POST("/webhook/razorpay", h.Webhook)

		v1.Use(m.Authentication())
		v1.POST("/orders/checkout", h.Checkout)
		v1.GET("/orders/my", h.ListMyOrders)
		v1.GET("/uploads/auth", h.UploadAuth)

		v1.POST("/products/create", m.Authorize(h.CreateProduct, auth.RoleAdmin))
		v1.DELETE("/products/delete/:id", m.Authorize(h.DeleteProduct, auth.RoleAdmin))
		v1.GET("/admin/orders", h.AdminListOrders)
		v1.GET("/admin/users", m.Authorize(h.AdminListUsers, auth.RoleAdmin))
		v1.GET("/admin/products", m.Authorize(h.ListProducts, auth.RoleAdmin))
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
