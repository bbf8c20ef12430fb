package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un producto en el catálogo
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Category    string             `json:"category" bson:"category"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

// ProductInput son los campos que llegan del formulario multipart.
// Image queda vacío cuando la petición no trae archivo.
type ProductInput struct {
	Name        string `form:"name"`
	Category    string `form:"category"`
	Description string `form:"description"`
	Image       string `form:"-"`
}
