package usecase

import (
	"context"
	"strings"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/goods/dto"
	masterdto "github.com/wojbuk3335/Bukowski-app-API-sub002/internal/masterdata/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/naming"
)

// prepare validates a product card and resolves it into a good of category.
// excludeID skips the good itself in uniqueness checks.
func (uc *goodsUseCase) prepare(ctx context.Context, in *dto.GoodInput, category, excludeID string) (*model.Good, error) {
	bagProduct := strings.TrimSpace(in.BagProduct)
	sub := strings.TrimSpace(in.Subcategory)
	subsub := strings.TrimSpace(in.RemainingSubsubcategory)
	stockID := strings.TrimSpace(in.Stock)

	// 1. Category specific fields
	var stock *model.MasterEntity
	switch category {
	case model.CategoryBags:
		if bagProduct == "" {
			return nil, apperror.BadRequest("Bag product code is required for bags category")
		}
	case model.CategoryWallets:
		if bagProduct == "" {
			return nil, apperror.BadRequest("Wallet product code is required for wallets category")
		}
	case model.CategoryRemaining:
		if bagProduct == "" {
			return nil, apperror.BadRequest("Product code is required for remaining assortment category")
		}
		if sub == "" {
			return nil, apperror.BadRequest("Subcategory is required for remaining assortment")
		}
		if subsub == "" {
			return nil, apperror.BadRequest("Remaining subcategory is required for remaining assortment")
		}
	default:
		if stockID == "" {
			return nil, apperror.BadRequest("Stock is required")
		}
		if stockID == model.PlaceholderStock {
			return nil, apperror.BadRequest("Produkt value cannot be %s", model.PlaceholderStock)
		}
		var err error
		if stock, err = uc.master(ctx, model.KindStock, stockID); err != nil {
			return nil, err
		}
		if stock == nil {
			return nil, apperror.BadRequest("stock %s not found", stockID)
		}
		if stock.Description == model.PlaceholderStock {
			return nil, apperror.BadRequest("Produkt value cannot be %s", model.PlaceholderStock)
		}
	}

	// 2. Color
	color, err := uc.master(ctx, model.KindColor, in.Color)
	if err != nil {
		return nil, err
	}
	if color == nil {
		return nil, apperror.BadRequest("color %s not found", in.Color)
	}

	// 3. Prices
	if !in.Price.IsPositive() {
		return nil, apperror.BadRequest("Cena musi być większa od zera")
	}
	if _, dup := in.PriceExceptions.DuplicateSize(); dup {
		return nil, apperror.BadRequest("Nie może być dwóch wyjątków z tym samym rozmiarem")
	}
	if _, dup := in.PriceExceptionsKarpacz.DuplicateSize(); dup {
		return nil, apperror.BadRequest("Nie może być dwóch wyjątków z tym samym rozmiarem")
	}

	// 4. Belts and gloves are referenced by their description text.
	if category == model.CategoryRemaining {
		kind := model.MasterKind("")
		switch model.SubcategoryTag(sub) {
		case model.SubcategoryBelts:
			kind = model.KindBelt
		case model.SubcategoryGloves:
			kind = model.KindGlove
		}
		if kind != "" {
			e, err := uc.master(ctx, kind, subsub)
			if err != nil {
				return nil, err
			}
			if e != nil {
				subsub = e.Description
			}
		}
	}

	// 5. Derived name and code
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		if stock != nil {
			fullName = naming.Join(stock.Description, color.Description)
		} else {
			fullName = naming.Join(bagProduct, color.Description)
		}
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		switch {
		case stock != nil:
			code = naming.JacketCode(stock.Code, color.Code)
		case category == model.CategoryRemaining:
			rp, err := uc.remainingProduct(ctx, in.BagID, bagProduct)
			if err != nil {
				return nil, err
			}
			if rp != nil {
				code = naming.RemainingBarcode(color.Code, rp.Number, rp.Description)
			}
		}
		if code == "" {
			return nil, apperror.BadRequest("Product code is required")
		}
	}

	// 6. Uniqueness
	unique, err := uc.repo.IsFullNameUnique(ctx, fullName, excludeID)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.BadRequest("Podana nazwa produktu już znajduje się w bazie danych!")
	}
	unique, err = uc.repo.IsCodeUnique(ctx, code, excludeID)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.BadRequest("Produkt o tym kodzie już znajduje się w bazie danych!")
	}

	var subcategory model.Subcategory
	if sub != "" {
		subcategory = model.ParseSubcategory(sub)
	}

	return &model.Good{
		StockID:                 model.StringPtr(stockID),
		ColorID:                 color.ID,
		FullName:                fullName,
		Code:                    code,
		Category:                category,
		Subcategory:             subcategory,
		BagsCategoryID:          model.StringPtr(strings.TrimSpace(in.BagsCategoryID)),
		RemainingSubsubcategory: subsub,
		ManufacturerID:          model.StringPtr(strings.TrimSpace(in.Manufacturer)),
		BagProduct:              bagProduct,
		BagID:                   strings.TrimSpace(in.BagID),
		Sex:                     in.Sex,
		Price:                   in.Price,
		DiscountPrice:           in.DiscountPrice,
		PriceExceptions:         exceptions(in.PriceExceptions),
		PriceKarpacz:            in.PriceKarpacz,
		DiscountPriceKarpacz:    in.DiscountPriceKarpacz,
		PriceExceptionsKarpacz:  exceptions(in.PriceExceptionsKarpacz),
		Picture:                 in.Picture,
		SellingPoint:            in.SellingPoint,
		Barcode:                 strings.TrimSpace(in.Barcode),
		IsSelectedForPrint:      in.IsSelectedForPrint,
		RowBackgroundColor:      in.RowBackgroundColor,
	}, nil
}

func exceptions(p model.PriceExceptions) model.PriceExceptions {
	if p == nil {
		return model.PriceExceptions{}
	}
	return p.Clone()
}

// master returns the entity with id when it exists and is of kind.
func (uc *goodsUseCase) master(ctx context.Context, kind model.MasterKind, id string) (*model.MasterEntity, error) {
	if id == "" {
		return nil, nil
	}
	e, err := uc.masters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Kind != kind {
		return nil, nil
	}
	return e, nil
}

// remainingProduct finds a remaining product by id, falling back to its code text.
func (uc *goodsUseCase) remainingProduct(ctx context.Context, id, code string) (*model.MasterEntity, error) {
	if e, err := uc.master(ctx, model.KindRemainingProduct, id); err != nil || e != nil {
		return e, err
	}
	if code == "" {
		return nil, nil
	}
	list, err := uc.masters.FindAll(ctx, &masterdto.MasterFilters{Kind: model.KindRemainingProduct})
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Description == code {
			return &list[i], nil
		}
	}
	return nil, nil
}
