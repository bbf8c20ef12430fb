package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"product-catalog/internal/apperrors"
	"product-catalog/internal/models"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// Insert crea un nuevo producto. El índice único sobre name es la
// autoridad final: si dos creates concurrentes pasan el pre-chequeo,
// aquí pierde exactamente uno con CONFLICT.
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Un producto nunca se guarda con campos vacíos
	if product.Name == "" || product.Category == "" || product.Description == "" || product.Image == "" {
		return apperrors.Validation("All fields are required")
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, product)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("Product already exists")
	}
	return err
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Product not found")
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, err
	}

	return &product, nil
}

// FindByName busca por nombre exacto; nil cuando no existe
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// FindByNameExcludingID busca por nombre exacto excluyendo un ID,
// para el pre-chequeo de unicidad en update (el propio producto
// puede conservar su nombre)
func (r *ProductRepository) FindByNameExcludingID(ctx context.Context, name, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Product not found")
	}
	return r.findOne(ctx, bson.M{"name": name, "_id": bson.M{"$ne": objID}})
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// FindAll devuelve el catálogo completo en orden de inserción
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateByID aplica un $set parcial y devuelve el documento actualizado
func (r *ProductRepository) UpdateByID(ctx context.Context, id string, fields bson.M) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Product not found")
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": fields},
		opts,
	).Decode(&updated)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Product not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("Product name exists")
		}
		return nil, err
	}

	return &updated, nil
}

// DeleteByID elimina definitivamente y devuelve el documento borrado.
// Borrado duro: no hay papelera ni soft-delete, y los ObjectID no se reutilizan.
func (r *ProductRepository) DeleteByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Product not found")
	}

	var deleted models.Product
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, err
	}

	return &deleted, nil
}
