package middleware

import (
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware xác thực token và kiểm tra role nếu có yêu cầu
func AuthMiddleware(secret string, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		userID, userRole, err := services.GetUserFromToken(secret, authHeader)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(userRole, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, userRole)
		c.Next()
	}
}

// StaffOnly chặn các tài khoản không phải nhân viên
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentRole(c).IsStaff() {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func CurrentRole(c *gin.Context) models.UserRole {
	if v, ok := c.Get(ContextUserRole); ok {
		if role, ok := v.(models.UserRole); ok {
			return role
		}
	}
	return ""
}

func hasRole(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// ErrorHandler xử lý lỗi gắn vào context bằng c.Error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
