package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelcore/dto"
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/services"
)

type UserController struct {
	Facade *services.BookingFacade
}

func NewUserController(facade *services.BookingFacade) UserController {
	return UserController{Facade: facade}
}

// RegisterUser godoc
// @Summary  Đăng ký tài khoản khách
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CreateUserRequest  true  "user"
// @Success  201  {object}  response.Response
// @Router   /users [post]
func (u UserController) RegisterUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	// đăng ký công khai chỉ tạo tài khoản user
	req.Role = string(models.RoleUser)
	user, err := u.Facade.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, user)
}

// GetUserByID godoc
// @Summary  Thông tin user
// @Tags     users
// @Produce  json
// @Param    id  path  string  true  "user id"
// @Success  200  {object}  response.Response
// @Router   /users/{id} [get]
func (u UserController) GetUserByID(c *gin.Context) {
	id := c.Param("id")
	if !canActFor(c, id) {
		response.Forbidden(c)
		return
	}
	user, err := u.Facade.GetUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}
