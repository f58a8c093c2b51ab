package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/schema"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/database/mongodb"
)

type exceptionDocument struct {
	Size  string               `bson:"size"`
	Value primitive.Decimal128 `bson:"value"`
}

type goodDocument struct {
	ID                      string               `bson:"_id"`
	Stock                   *string              `bson:"stock,omitempty"`
	Color                   string               `bson:"color"`
	FullName                string               `bson:"fullName"`
	Code                    string               `bson:"code"`
	Category                string               `bson:"category"`
	Subcategory             string               `bson:"subcategory,omitempty"`
	BagsCategoryID          *string              `bson:"bagsCategoryId,omitempty"`
	RemainingSubsubcategory string               `bson:"remainingsubsubcategory,omitempty"`
	Manufacturer            *string              `bson:"manufacturer,omitempty"`
	BagProduct              string               `bson:"bagProduct,omitempty"`
	BagID                   string               `bson:"bagId,omitempty"`
	Sex                     string               `bson:"sex,omitempty"`
	Price                   primitive.Decimal128 `bson:"price"`
	DiscountPrice           primitive.Decimal128 `bson:"discount_price"`
	PriceExceptions         []exceptionDocument  `bson:"priceExceptions"`
	PriceKarpacz            primitive.Decimal128 `bson:"priceKarpacz"`
	DiscountPriceKarpacz    primitive.Decimal128 `bson:"discount_priceKarpacz"`
	PriceExceptionsKarpacz  []exceptionDocument  `bson:"priceExceptionsKarpacz"`
	Picture                 string               `bson:"picture"`
	SellingPoint            string               `bson:"sellingPoint"`
	Barcode                 string               `bson:"barcode"`
	IsSelectedForPrint      bool                 `bson:"isSelectedForPrint"`
	RowBackgroundColor      string               `bson:"rowBackgroundColor"`
	CreatedAt               time.Time            `bson:"createdAt"`
	UpdatedAt               time.Time            `bson:"updatedAt"`
}

func toExceptionDocuments(in model.PriceExceptions) []exceptionDocument {
	out := make([]exceptionDocument, 0, len(in))
	for _, e := range in {
		out = append(out, exceptionDocument{Size: e.Size, Value: mongodb.Decimal128(e.Value)})
	}
	return out
}

func fromExceptionDocuments(in []exceptionDocument) model.PriceExceptions {
	out := make(model.PriceExceptions, 0, len(in))
	for _, e := range in {
		out = append(out, model.PriceException{Size: e.Size, Value: mongodb.FromDecimal128(e.Value)})
	}
	return out
}

func toDocument(g *model.Good) *goodDocument {
	return &goodDocument{
		ID:                      g.ID,
		Stock:                   g.StockID,
		Color:                   g.ColorID,
		FullName:                g.FullName,
		Code:                    g.Code,
		Category:                g.Category,
		Subcategory:             g.Subcategory.String(),
		BagsCategoryID:          g.BagsCategoryID,
		RemainingSubsubcategory: g.RemainingSubsubcategory,
		Manufacturer:            g.ManufacturerID,
		BagProduct:              g.BagProduct,
		BagID:                   g.BagID,
		Sex:                     g.Sex,
		Price:                   mongodb.Decimal128(g.Price),
		DiscountPrice:           mongodb.Decimal128(g.DiscountPrice),
		PriceExceptions:         toExceptionDocuments(g.PriceExceptions),
		PriceKarpacz:            mongodb.Decimal128(g.PriceKarpacz),
		DiscountPriceKarpacz:    mongodb.Decimal128(g.DiscountPriceKarpacz),
		PriceExceptionsKarpacz:  toExceptionDocuments(g.PriceExceptionsKarpacz),
		Picture:                 g.Picture,
		SellingPoint:            g.SellingPoint,
		Barcode:                 g.Barcode,
		IsSelectedForPrint:      g.IsSelectedForPrint,
		RowBackgroundColor:      g.RowBackgroundColor,
		CreatedAt:               g.CreatedAt,
		UpdatedAt:               g.UpdatedAt,
	}
}

func (d *goodDocument) toModel() model.Good {
	var sub model.Subcategory
	if d.Subcategory != "" {
		sub = model.ParseSubcategory(d.Subcategory)
	}
	return model.Good{
		BaseModel:               model.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		StockID:                 d.Stock,
		ColorID:                 d.Color,
		FullName:                d.FullName,
		Code:                    d.Code,
		Category:                d.Category,
		Subcategory:             sub,
		BagsCategoryID:          d.BagsCategoryID,
		RemainingSubsubcategory: d.RemainingSubsubcategory,
		ManufacturerID:          d.Manufacturer,
		BagProduct:              d.BagProduct,
		BagID:                   d.BagID,
		Sex:                     d.Sex,
		Price:                   mongodb.FromDecimal128(d.Price),
		DiscountPrice:           mongodb.FromDecimal128(d.DiscountPrice),
		PriceExceptions:         fromExceptionDocuments(d.PriceExceptions),
		PriceKarpacz:            mongodb.FromDecimal128(d.PriceKarpacz),
		DiscountPriceKarpacz:    mongodb.FromDecimal128(d.DiscountPriceKarpacz),
		PriceExceptionsKarpacz:  fromExceptionDocuments(d.PriceExceptionsKarpacz),
		Picture:                 d.Picture,
		SellingPoint:            d.SellingPoint,
		Barcode:                 d.Barcode,
		IsSelectedForPrint:      d.IsSelectedForPrint,
		RowBackgroundColor:      d.RowBackgroundColor,
	}
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(schema.CollectionGoods)}
}

func (r *MongoRepository) Create(ctx context.Context, g *model.Good) error {
	_, err := r.col.InsertOne(ctx, toDocument(g))
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.Good, error) {
	var doc goodDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	g := doc.toModel()
	return &g, nil
}

func (r *MongoRepository) FindAll(ctx context.Context, f *dto.GoodFilters) ([]model.Good, error) {
	filter := bson.M{}
	if f.StockID != "" {
		filter["stock"] = f.StockID
	}
	if f.ColorID != "" {
		filter["color"] = f.ColorID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Subcategory != "" {
		filter["subcategory"] = f.Subcategory
	}
	if f.RemainingSubsubcategory != "" {
		filter["remainingsubsubcategory"] = f.RemainingSubsubcategory
	}
	if f.BagProduct != "" {
		filter["bagProduct"] = f.BagProduct
	}
	if f.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{bson.M{"fullName": pattern}, bson.M{"code": pattern}}
	}
	if len(f.IDs) > 0 {
		filter["_id"] = bson.M{"$in": f.IDs}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []goodDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.Good, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (r *MongoRepository) Update(ctx context.Context, g *model.Good) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": g.ID}, toDocument(g))
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoRepository) IsFullNameUnique(ctx context.Context, fullName, excludeID string) (bool, error) {
	return r.isUnique(ctx, bson.M{"fullName": fullName}, excludeID)
}

func (r *MongoRepository) IsCodeUnique(ctx context.Context, code, excludeID string) (bool, error) {
	return r.isUnique(ctx, bson.M{"code": code}, excludeID)
}

func (r *MongoRepository) isUnique(ctx context.Context, filter bson.M, excludeID string) (bool, error) {
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
