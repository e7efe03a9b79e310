package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/edufees-api/internal/models"
)

// Claims represents the JWT claims structure
type Claims struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Auth returns a middleware that validates JWT tokens
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		tokenString := ""

		if authHeader == "" {
			// Check query param for download links
			tokenString = c.Query("token")
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Authorization header is required",
				})
				return
			}
		} else {
			// Extract token from "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization header format",
				})
				return
			}
			tokenString = parts[1]
		}

		// Parse and validate token
		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}
		if claims.ContactID == "" && claims.Role == models.RoleStudent {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "token has no contact id",
			})
			return
		}

		// Store claims in context for handlers to use
		c.Set("contactID", claims.ContactID)
		c.Set("userName", claims.Name)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)
		c.Set("token", tokenString)
		c.Set("claims", claims)

		c.Next()
	}
}

// GenerateToken signs claims with the HMAC secret, valid for ttl
func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.Subject == "" {
		claims.Subject = claims.ContactID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validateToken parses and validates a JWT token string
func validateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// GetContactID extracts the caller's contact ID from the Gin context
func GetContactID(c *gin.Context) string {
	return c.GetString("contactID")
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	return c.GetString("userRole")
}

// GetUserEmail extracts the caller's email from the Gin context
func GetUserEmail(c *gin.Context) string {
	return c.GetString("userEmail")
}

// IsStaff checks if the current user is staff or admin
func IsStaff(c *gin.Context) bool {
	role := GetUserRole(c)
	return role == models.RoleStaff || role == models.RoleAdmin
}

// CanAccessContact reports whether the caller may read the given student's fees
func CanAccessContact(c *gin.Context, contactID string) bool {
	if IsStaff(c) {
		return true
	}
	return contactID != "" && contactID == GetContactID(c)
}

// CurrentSession builds the record-source session for the caller. The caller's
// token is forwarded so upstream lookups run with their credentials.
func CurrentSession(c *gin.Context) models.StudentSession {
	return models.StudentSession{
		ContactID: GetContactID(c),
		Name:      c.GetString("userName"),
		Token:     c.GetString("token"),
	}
}

// RequireRole returns a middleware that requires specific roles
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRole(c)
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "You do not have access to this resource",
		})
	}
}

// RequireStaff returns a middleware that requires the staff or admin role
func RequireStaff() gin.HandlerFunc {
	return RequireRole(models.RoleStaff, models.RoleAdmin)
}

// RequireSelfOrStaff returns a middleware that allows staff, or the student
// whose contact_id is in the route
func RequireSelfOrStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CanAccessContact(c, c.Param("contact_id")) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "You do not have access to this student's fees",
		})
	}
}
