package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"hotelcore/errors"
	"hotelcore/models"
)

// TokenUser là phần "userinfo" trong token
type TokenUser struct {
	UserID string          `json:"userid"`
	Role   models.UserRole `json:"role"`
}

type TokenClaims struct {
	UserInfo TokenUser `json:"userinfo"`
	jwt.StandardClaims
}

// GenerateToken ký token HS256 cho user
func GenerateToken(secret, userID string, role models.UserRole, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserInfo: TokenUser{UserID: userID, Role: role},
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GetUserFromToken kiểm tra chữ ký và lấy userID, role từ token
func GetUserFromToken(secret, tokenString string) (string, models.UserRole, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return "", "", errors.NewAppError(errors.ErrCodeMissingToken, "Thiếu token", nil)
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}
	if claims.UserInfo.UserID == "" {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy ID user trong token", nil)
	}
	if !claims.UserInfo.Role.Valid() {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy role trong token", nil)
	}
	return claims.UserInfo.UserID, claims.UserInfo.Role, nil
}
