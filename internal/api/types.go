package api

import "time"

// User is the identity record returned by the auth endpoints.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Author is the denormalized creator snapshot embedded in each book.
type Author struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
	Phone        string `json:"phone"`
}

// Book is a single recommendation as returned by the listing endpoints.
type Book struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	Rating    int       `json:"rating"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Author    Author    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookDraft is the payload for creating a new recommendation.
// Image is a data URL (base64-encoded) or an image URI the backend accepts.
type BookDraft struct {
	Title   string  `json:"title"`
	Caption string  `json:"caption"`
	Rating  int     `json:"rating"`
	Price   float64 `json:"price"`
	Image   string  `json:"image"`
}

// AuthResponse is the success payload of the register and login endpoints.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// BookPage is one page of the global listing endpoint.
type BookPage struct {
	Books      []Book `json:"books"`
	TotalPages int    `json:"totalPages"`
}

// RegisterParams holds the fields of a registration request.
// The client forwards them as-is; field validation is the caller's job.
type RegisterParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
