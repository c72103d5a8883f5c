package models

// Order - заказ в платёжном шлюзе. Не сохраняется в БД:
// запись появляется только после оплаты, в виде Donation.
type Order struct {
	OrderID          string
	AmountMajorUnits int64
	Currency         string
	CustomerID       string
	CustomerEmail    string
	CustomerPhone    string
	Note             string
}

// CreateOrderRequest - запрос на создание заказа
type CreateOrderRequest struct {
	Title  string `json:"title"`
	Amount int64  `json:"amount"` // в пайсах
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// OrderResult - ответ клиенту для перехода на страницу оплаты
type OrderResult struct {
	OrderID    string `json:"orderId"`
	OrderToken string `json:"orderToken"`
}
