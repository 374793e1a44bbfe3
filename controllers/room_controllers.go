package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	middlewares "hotelcore/middleware"
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/validator"
)

type RoomController struct {
	Facade *services.BookingFacade
}

func NewRoomController(facade *services.BookingFacade) RoomController {
	return RoomController{Facade: facade}
}

// GetAvailableRooms godoc
// @Summary  Tìm phòng trống
// @Tags     rooms
// @Produce  json
// @Param    checkIn      query  string    true   "YYYY-MM-DD"
// @Param    checkOut     query  string    true   "YYYY-MM-DD"
// @Param    roomType     query  string    false  "loại phòng, nhận tiếng Việt"
// @Param    minCapacity  query  int       false  "số khách tối thiểu"
// @Param    amenities    query  []string  false  "tiện nghi"
// @Success  200  {object}  response.Response
// @Router   /rooms/available [get]
func (r RoomController) GetAvailableRooms(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Query không hợp lệ", err))
		return
	}
	checkIn, err := validator.ParseDate("checkIn", q.CheckIn)
	if err != nil {
		response.FromError(c, err)
		return
	}
	checkOut, err := validator.ParseDate("checkOut", q.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return
	}

	rooms, err := r.Facade.FindAvailableRooms(c.Request.Context(), checkIn, checkOut, q.Filter())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

// CreateRoom godoc
// @Summary  Tạo phòng (nhân viên)
// @Tags     rooms
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CreateRoomRequest  true  "phòng"
// @Success  201  {object}  response.Response
// @Router   /rooms [post]
func (r RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := r.Facade.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

// GetRoomDetail godoc
// @Summary  Chi tiết phòng
// @Tags     rooms
// @Produce  json
// @Param    id  path  string  true  "room id"
// @Success  200  {object}  response.Response
// @Router   /rooms/{id} [get]
func (r RoomController) GetRoomDetail(c *gin.Context) {
	room, err := r.Facade.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// ChangeRoomStatus godoc
// @Summary  Đổi trạng thái vận hành của phòng (vacant, cleaning, maintenance)
// @Tags     rooms
// @Accept   json
// @Produce  json
// @Param    id    path  string                    true  "room id"
// @Param    body  body  dto.SetRoomStatusRequest  true  "trạng thái"
// @Success  200  {object}  response.Response
// @Router   /rooms/{id}/status [put]
func (r RoomController) ChangeRoomStatus(c *gin.Context) {
	var req dto.SetRoomStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := r.Facade.SetRoomStatus(c.Request.Context(), c.Param("id"), models.RoomStatus(req.Status), middlewares.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// DeleteRoom godoc
// @Summary  Xóa phòng không còn booking mở
// @Tags     rooms
// @Param    id  path  string  true  "room id"
// @Success  200  {object}  response.Response
// @Router   /rooms/{id} [delete]
func (r RoomController) DeleteRoom(c *gin.Context) {
	if err := r.Facade.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetRoomCalendar godoc
// @Summary  Lịch theo ngày của phòng trong tháng
// @Tags     rooms
// @Produce  json
// @Param    id     path   string  true   "room id"
// @Param    month  query  string  false  "YYYY-MM, mặc định tháng hiện tại"
// @Success  200  {object}  response.Response
// @Router   /rooms/{id}/calendar [get]
func (r RoomController) GetRoomCalendar(c *gin.Context) {
	month := time.Now().UTC()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			response.FromError(c, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "month không đúng định dạng YYYY-MM", err))
			return
		}
		month = parsed
	}
	days, err := r.Facade.RoomCalendar(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, days)
}
