package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	middlewares "hotelcore/middleware"
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/validator"
)

type BookingController struct {
	Facade *services.BookingFacade
}

func NewBookingController(facade *services.BookingFacade) BookingController {
	return BookingController{Facade: facade}
}

// bindJSON decode body rồi chạy validate tags. Đã ghi response khi trả về false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.FromError(c, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Dữ liệu không hợp lệ", err))
		return false
	}
	if err := validator.Struct(req); err != nil {
		response.FromError(c, err)
		return false
	}
	return true
}

// canActFor: nhân viên thao tác cho mọi user, user thường chỉ cho chính mình.
func canActFor(c *gin.Context, userID string) bool {
	return middlewares.CurrentRole(c).IsStaff() || middlewares.CurrentUserID(c) == userID
}

// CreateBooking godoc
// @Summary  Tạo booking pending
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CreateBookingRequest  true  "booking"
// @Success  201  {object}  response.Response
// @Failure  409  {object}  response.ErrorResponse
// @Router   /bookings [post]
func (b BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.GuestID == "" {
		req.GuestID = middlewares.CurrentUserID(c)
	}
	if !canActFor(c, req.GuestID) {
		response.Forbidden(c)
		return
	}

	checkIn, err := validator.ParseDate("checkIn", req.CheckIn)
	if err != nil {
		response.FromError(c, err)
		return
	}
	checkOut, err := validator.ParseDate("checkOut", req.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return
	}

	booking, err := b.Facade.CreateBooking(c.Request.Context(), dto.CreateBookingInput{
		RoomID:             req.RoomID,
		GuestID:            req.GuestID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		GuestCount:         req.GuestCount,
		SpecialRequests:    req.SpecialRequests,
		AdditionalServices: req.AdditionalServices,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, booking)
}

// GetBooking godoc
// @Summary  Chi tiết booking
// @Tags     bookings
// @Produce  json
// @Param    id  path  string  true  "booking id"
// @Success  200  {object}  response.Response
// @Router   /bookings/{id} [get]
func (b BookingController) GetBooking(c *gin.Context) {
	booking, err := b.Facade.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !canActFor(c, booking.GuestID) {
		response.Forbidden(c)
		return
	}
	response.Success(c, booking)
}

// ListBookings godoc
// @Summary  Danh sách booking của một khách, mới nhất trước
// @Tags     bookings
// @Produce  json
// @Param    guestId  query  string  false  "mặc định là user hiện tại"
// @Success  200  {object}  response.Response
// @Router   /bookings [get]
func (b BookingController) ListBookings(c *gin.Context) {
	guestID := c.DefaultQuery("guestId", middlewares.CurrentUserID(c))
	if !canActFor(c, guestID) {
		response.Forbidden(c)
		return
	}
	bookings, err := b.Facade.ListGuestBookings(c.Request.Context(), guestID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, bookings, 1, len(bookings), len(bookings))
}

// UpdateBookingStatus godoc
// @Summary  Chuyển trạng thái booking (nhân viên)
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    id    path  string                 true  "booking id"
// @Param    body  body  dto.TransitionRequest  true  "trạng thái mới"
// @Success  200  {object}  response.Response
// @Failure  409  {object}  response.ErrorResponse
// @Router   /bookings/{id}/status [put]
func (b BookingController) UpdateBookingStatus(c *gin.Context) {
	var req dto.TransitionRequest
	if !bindJSON(c, &req) {
		return
	}
	target, ok := models.ParseBookingStatus(req.Status)
	if !ok {
		response.FromError(c, apperrors.Newf(apperrors.ErrCodeInvalidTransition, "unknown booking status %q", req.Status))
		return
	}

	booking, err := b.Facade.Transition(c.Request.Context(), c.Param("id"), target, middlewares.CurrentUserID(c), req.Extra())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}

// CancelBooking godoc
// @Summary  Hủy booking
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    id    path  string                    true  "booking id"
// @Param    body  body  dto.CancelBookingRequest  false "lý do, tiền hoàn"
// @Success  200  {object}  response.Response
// @Router   /bookings/{id}/cancel [post]
func (b BookingController) CancelBooking(c *gin.Context) {
	var req dto.CancelBookingRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	booking, err := b.Facade.GetBooking(ctx, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !canActFor(c, booking.GuestID) {
		response.Forbidden(c)
		return
	}
	// khách không tự đặt tiền hoàn
	if !middlewares.CurrentRole(c).IsStaff() {
		req.RefundAmount = nil
	}

	booking, err = b.Facade.CancelBooking(ctx, booking.ID, middlewares.CurrentUserID(c), req.Reason, req.RefundAmount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}
