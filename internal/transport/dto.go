package transport

// Prices arrive as raw form strings and are parsed by the catalog, matching
// the storefront forms. Colors and sizes are loosely typed on create because
// clients send either arrays or nothing; the handler coerces them.

type CreateProductRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Colors      any    `json:"colors"`
	Sizes       any    `json:"sizes"`
}

// PatchProductRequest uses nil pointers for "field omitted": omitted colors
// or sizes keep the stored lists, an explicit empty array clears them.
type PatchProductRequest struct {
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Colors      *[]string `json:"colors"`
	Sizes       *[]string `json:"sizes"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ExternalLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AddCartItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}
