package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelcore/dto"
	middlewares "hotelcore/middleware"
	"hotelcore/response"
	"hotelcore/services"
)

type RateController struct {
	Facade *services.BookingFacade
}

func NewRateController(facade *services.BookingFacade) RateController {
	return RateController{Facade: facade}
}

// CreateRate godoc
// @Summary  Đánh giá phòng hoặc nhà hàng, mỗi user một lần
// @Tags     ratings
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CreateRatingRequest  true  "rating 1-5"
// @Success  201  {object}  response.Response
// @Failure  409  {object}  response.ErrorResponse
// @Router   /ratings [post]
func (r RateController) CreateRate(c *gin.Context) {
	var req dto.CreateRatingRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = middlewares.CurrentUserID(c)
	}
	if !canActFor(c, req.UserID) {
		response.Forbidden(c)
		return
	}

	summary, err := r.Facade.AddRating(c.Request.Context(), req.ResourceID, req.UserID, req.Rating)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, summary)
}

// GetRatingSummary godoc
// @Summary  Điểm trung bình, phân bố sao và điểm của user (nếu có)
// @Tags     ratings
// @Produce  json
// @Param    resourceId  path   string  true   "room hoặc restaurant id"
// @Param    userId      query  string  false  "user id"
// @Success  200  {object}  response.Response
// @Router   /ratings/{resourceId} [get]
func (r RateController) GetRatingSummary(c *gin.Context) {
	summary, err := r.Facade.GetRatingSummary(c.Request.Context(), c.Param("resourceId"), c.Query("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summary)
}

// CreateRestaurant godoc
// @Summary  Đăng ký nhà hàng (nhân viên)
// @Tags     ratings
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CreateRestaurantRequest  true  "nhà hàng"
// @Success  201  {object}  response.Response
// @Router   /restaurants [post]
func (r RateController) CreateRestaurant(c *gin.Context) {
	var req dto.CreateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}
	restaurant, err := r.Facade.CreateRestaurant(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, restaurant)
}
