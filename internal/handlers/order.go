package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cseduardo/TiendaPromElec/internal/auth"
	"github.com/cseduardo/TiendaPromElec/internal/middleware"
	"github.com/cseduardo/TiendaPromElec/internal/models"
	"github.com/cseduardo/TiendaPromElec/internal/orders"
	"github.com/cseduardo/TiendaPromElec/internal/store"
)

type createOrderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type createOrderRequest struct {
	Items []createOrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

type updateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// canAccessOrder is the self-or-admin rule: admins see every order, everyone
// else only their own. Returning false maps to 403, never 404, so order
// existence is only disclosed through that distinction.
func canAccessOrder(identity auth.Identity, order models.Order) bool {
	return identity.IsAdmin() || order.CustomerID == identity.ID
}

func CreateOrder(db *mongo.Database, placement *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		requested := make([]orders.RequestedLine, 0, len(req.Items))
		for _, item := range req.Items {
			productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid productId")
				return
			}
			requested = append(requested, orders.RequestedLine{
				ProductID: productID,
				Quantity:  item.Quantity,
			})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := placement.Place(ctx, identity.ID, requested)
		if err != nil {
			var rejected *orders.NoValidLinesError
			if errors.As(err, &rejected) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":    "no requested line could be fulfilled",
					"warnings": rejected.Warnings,
				})
				return
			}
			if errors.Is(err, orders.ErrNoLines) {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			log.Printf("[%s] placement failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

func GetOrders(orderStore store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var (
			list []models.Order
			err  error
		)
		if identity.IsAdmin() {
			list, err = orderStore.ListAll(ctx)
		} else {
			list, err = orderStore.ListByCustomer(ctx, identity.ID)
		}
		if err != nil {
			log.Println("[ORDER] [ERROR] list orders failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func GetOrder(orderStore store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orderStore.GetByID(ctx, orderID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			log.Println("[ORDER] [ERROR] get order failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if !canAccessOrder(identity, *order) {
			log.Printf("[ORDER] [WARN] customer %s denied access to order %s", identity.ID.Hex(), orderID.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func UpdateOrder(orderStore store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err = orderStore.UpdateStatus(ctx, orderID, strings.TrimSpace(req.Status))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			log.Println("[ORDER] [ERROR] update order failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func DeleteOrder(orderStore store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err = orderStore.Delete(ctx, orderID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
