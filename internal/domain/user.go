package domain

import "time"

// User represents a storefront customer. The cart lives embedded on the user
// document and is mutated wholesale.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	CartData  CartData  `json:"cart_data" bson:"cart_data"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ReviewAuthor is the public slice of a user attached to approved reviews.
type ReviewAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
