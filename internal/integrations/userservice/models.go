package userservice

// Renter модель пользователя-арендатора из UserService
type Renter struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	IsBlocked  bool   `json:"is_blocked"`
}

// CanRent проверяет, может ли пользователь арендовать вещи
func (r *Renter) CanRent() bool {
	return !r.IsBlocked
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
