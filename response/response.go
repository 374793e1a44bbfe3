package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelcore/errors"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ErrorResponse thêm mã lỗi nghiệp vụ
type ErrorResponse struct {
	Code      int              `json:"code"`
	Mess      string           `json:"mess"`
	ErrorCode errors.ErrorCode `json:"errorCode,omitempty"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

// Created trả về 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// FromError chọn HTTP status theo mã lỗi của AppError
func FromError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	appErr := errors.GetAppError(err)
	if appErr == nil || status == http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Code: 0, Mess: "Lỗi server", ErrorCode: errors.CodeOf(err)})
		return
	}
	c.JSON(status, ErrorResponse{Code: 0, Mess: appErr.Message, ErrorCode: appErr.Code})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Chưa xác thực",
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Không có quyền truy cập",
	})
}

