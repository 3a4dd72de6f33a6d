package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cseduardo/TiendaPromElec/internal/auth"
	"github.com/cseduardo/TiendaPromElec/internal/middleware"
	"github.com/cseduardo/TiendaPromElec/internal/models"
)

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func emailTaken(count int64) bool {
	return count > 0
}

// isDuplicateEmail reports whether an insert failed against the unique email
// index, which happens when two registrations race past the pre-check.
func isDuplicateEmail(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// newCustomer builds the account to persist from a validated registration,
// hashing the password and normalizing the contact fields.
func newCustomer(req RegisterRequest, now time.Time) (models.Customer, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.Customer{}, err
	}
	return models.Customer{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		PasswordHash: hash,
		Role:         auth.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func Register(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := normalizeEmail(req.Email)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("customers").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if emailTaken(count) {
			log.Println("[AUTH] [ERROR] register email exists:", email)
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}

		customer, err := newCustomer(req, time.Now())
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		if _, err := db.Collection("customers").InsertOne(ctx, customer); err != nil {
			if isDuplicateEmail(err) {
				log.Println("[AUTH] [ERROR] register email exists:", email)
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[AUTH] [INFO] customer registered:", email)
		c.JSON(http.StatusOK, gin.H{"message": "customer registered successfully"})
	}
}

func Login(db *mongo.Database, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		email := normalizeEmail(req.Email)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var customer models.Customer
		err := db.Collection("customers").FindOne(ctx, bson.M{"email": email}).Decode(&customer)
		// A single generic message for both unknown email and bad password.
		if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && !auth.CheckPassword(req.Password, customer.PasswordHash)) {
			log.Println("[AUTH] [ERROR] login invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		token, err := tokens.Issue(customer)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", customer.Email)
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"email": customer.Email,
			"role":  customer.Role,
		})
	}
}

func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var customer models.Customer
		if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": identity.ID}).Decode(&customer); err != nil {
			log.Println("[AUTH] [ERROR] get me failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}

		c.JSON(http.StatusOK, customer)
	}
}

func UpdateMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{
			"fullName":  strings.TrimSpace(req.FullName),
			"phone":     strings.TrimSpace(req.Phone),
			"address":   strings.TrimSpace(req.Address),
			"updatedAt": time.Now(),
		}

		// Password only changes when a new one is supplied.
		if strings.TrimSpace(req.Password) != "" {
			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				log.Println("[AUTH] [ERROR] profile password hash failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
				return
			}
			update["passwordHash"] = hash
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("customers").UpdateByID(ctx, identity.ID, bson.M{"$set": update})
		if err != nil {
			log.Println("[AUTH] [ERROR] profile update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}

		log.Println("[AUTH] [INFO] profile updated:", identity.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}
