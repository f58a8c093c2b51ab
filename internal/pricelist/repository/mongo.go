package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/schema"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/database/mongodb"
)

type exceptionDocument struct {
	Size  string               `bson:"size"`
	Value primitive.Decimal128 `bson:"value"`
}

type itemDocument struct {
	ID                      string               `bson:"_id"`
	OriginalGoodID          string               `bson:"originalGoodId"`
	Stock                   *string              `bson:"stock,omitempty"`
	Color                   string               `bson:"color"`
	FullName                string               `bson:"fullName"`
	Code                    string               `bson:"code"`
	Category                string               `bson:"category"`
	Subcategory             string               `bson:"subcategory,omitempty"`
	BagsCategoryID          *string              `bson:"bagsCategoryId,omitempty"`
	RemainingSubsubcategory string               `bson:"remainingsubsubcategory,omitempty"`
	Manufacturer            *string              `bson:"manufacturer,omitempty"`
	Picture                 string               `bson:"picture"`
	BagProduct              string               `bson:"bagProduct,omitempty"`
	Price                   primitive.Decimal128 `bson:"price"`
	DiscountPrice           primitive.Decimal128 `bson:"discountPrice"`
	PriceExceptions         []exceptionDocument  `bson:"priceExceptions"`
	CreatedAt               time.Time            `bson:"createdAt"`
	UpdatedAt               time.Time            `bson:"updatedAt"`
}

type priceListDocument struct {
	ID               string         `bson:"_id"`
	SellingPointID   string         `bson:"sellingPointId"`
	SellingPointName string         `bson:"sellingPointName"`
	Items            []itemDocument `bson:"items"`
	CreatedAt        time.Time      `bson:"createdAt"`
	UpdatedAt        time.Time      `bson:"updatedAt"`
}

func toItemDocument(it *model.PriceListItem) itemDocument {
	exceptions := make([]exceptionDocument, 0, len(it.PriceExceptions))
	for _, e := range it.PriceExceptions {
		exceptions = append(exceptions, exceptionDocument{Size: e.Size, Value: mongodb.Decimal128(e.Value)})
	}
	return itemDocument{
		ID:                      it.ID,
		OriginalGoodID:          it.OriginalGoodID,
		Stock:                   it.StockID,
		Color:                   it.ColorID,
		FullName:                it.FullName,
		Code:                    it.Code,
		Category:                it.Category,
		Subcategory:             it.Subcategory.String(),
		BagsCategoryID:          it.BagsCategoryID,
		RemainingSubsubcategory: it.RemainingSubsubcategory,
		Manufacturer:            it.ManufacturerID,
		Picture:                 it.Picture,
		BagProduct:              it.BagProduct,
		Price:                   mongodb.Decimal128(it.Price),
		DiscountPrice:           mongodb.Decimal128(it.DiscountPrice),
		PriceExceptions:         exceptions,
		CreatedAt:               it.CreatedAt,
		UpdatedAt:               it.UpdatedAt,
	}
}

func (d *itemDocument) toModel() model.PriceListItem {
	exceptions := make(model.PriceExceptions, 0, len(d.PriceExceptions))
	for _, e := range d.PriceExceptions {
		exceptions = append(exceptions, model.PriceException{Size: e.Size, Value: mongodb.FromDecimal128(e.Value)})
	}
	var sub model.Subcategory
	if d.Subcategory != "" {
		sub = model.ParseSubcategory(d.Subcategory)
	}
	return model.PriceListItem{
		ID:                      d.ID,
		OriginalGoodID:          d.OriginalGoodID,
		StockID:                 d.Stock,
		ColorID:                 d.Color,
		FullName:                d.FullName,
		Code:                    d.Code,
		Category:                d.Category,
		Subcategory:             sub,
		BagsCategoryID:          d.BagsCategoryID,
		RemainingSubsubcategory: d.RemainingSubsubcategory,
		ManufacturerID:          d.Manufacturer,
		Picture:                 d.Picture,
		BagProduct:              d.BagProduct,
		Price:                   mongodb.FromDecimal128(d.Price),
		DiscountPrice:           mongodb.FromDecimal128(d.DiscountPrice),
		PriceExceptions:         exceptions,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}

func toDocument(pl *model.PriceList) *priceListDocument {
	items := make([]itemDocument, 0, len(pl.Items))
	for i := range pl.Items {
		items = append(items, toItemDocument(&pl.Items[i]))
	}
	return &priceListDocument{
		ID:               pl.ID,
		SellingPointID:   pl.SellingPointID,
		SellingPointName: pl.SellingPointName,
		Items:            items,
		CreatedAt:        pl.CreatedAt,
		UpdatedAt:        pl.UpdatedAt,
	}
}

func (d *priceListDocument) toModel() model.PriceList {
	items := make(model.PriceListItems, 0, len(d.Items))
	for i := range d.Items {
		items = append(items, d.Items[i].toModel())
	}
	return model.PriceList{
		BaseModel:        model.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		SellingPointID:   d.SellingPointID,
		SellingPointName: d.SellingPointName,
		Items:            items,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(schema.CollectionPriceLists)}
}

func (r *MongoRepository) Create(ctx context.Context, pl *model.PriceList) error {
	_, err := r.col.InsertOne(ctx, toDocument(pl))
	return err
}

func (r *MongoRepository) FindBySellingPoint(ctx context.Context, sellingPointID string) (*model.PriceList, error) {
	var doc priceListDocument
	if err := r.col.FindOne(ctx, bson.M{"sellingPointId": sellingPointID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	pl := doc.toModel()
	return &pl, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]model.PriceList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sellingPointName", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []priceListDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.PriceList, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (r *MongoRepository) Update(ctx context.Context, pl *model.PriceList) error {
	doc := toDocument(pl)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": pl.ID}, bson.M{"$set": bson.M{
		"sellingPointName": doc.SellingPointName,
		"items":            doc.Items,
		"updatedAt":        doc.UpdatedAt,
	}})
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, sellingPointID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"sellingPointId": sellingPointID})
	return err
}
