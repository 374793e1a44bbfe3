package dto

type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role"`
}

type CreateRestaurantRequest struct {
	Name    string `json:"name" validate:"required"`
	Cuisine string `json:"cuisine"`
}
