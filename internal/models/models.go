package models

// The JSON layouts here match the documents the original storefront kept in
// browser localStorage, so an export of that data loads unchanged. The stored
// password digest lives under the "password" key for the same reason.

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description,omitempty"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	CreatedAt   string   `json:"createdAt"`
}

type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password,omitempty"`
	Role         string `json:"role"`
	FBID         string `json:"fbId,omitempty"`
}

// Session is the single active identity. Role is copied from the user record
// at login time and is not kept in sync with later role changes.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CartItem references a product by id without owning it; the reference may
// dangle if the product is deleted later. Price is captured at add time.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
}
