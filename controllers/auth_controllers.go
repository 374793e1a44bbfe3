package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelcore/dto"
	"hotelcore/response"
	"hotelcore/services"
)

type AuthController struct {
	Facade *services.BookingFacade
}

func NewAuthController(facade *services.BookingFacade) AuthController {
	return AuthController{Facade: facade}
}

// Login godoc
// @Summary  Đăng nhập bằng email, trả về access token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  dto.LoginInput  true  "email, mật khẩu"
// @Success  200  {object}  response.Response
// @Failure  401  {object}  response.ErrorResponse
// @Router   /auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.Facade.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}
