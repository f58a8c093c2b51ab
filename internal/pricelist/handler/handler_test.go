package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/httpapi"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/dto"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/pricelist/handler"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/reconcile"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

// stubUseCase records what the handler passes on. Methods not overridden
// panic through the nil embedded interface.
type stubUseCase struct {
	pricelist.UseCase

	sellingPointID string
	opts           model.SyncOptions
	itemInput      *dto.UpdateItemPriceInput
	createInput    *dto.CreatePriceListInput
	err            error
}

func (s *stubUseCase) Sync(_ context.Context, sellingPointID string, opts model.SyncOptions) (*dto.SyncResult, error) {
	s.sellingPointID = sellingPointID
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SyncResult{
		PriceList: &model.PriceList{SellingPointID: sellingPointID},
		Result:    reconcile.Result{UpdatedCount: 2, AddedCount: 1},
	}, nil
}

func (s *stubUseCase) SyncAll(_ context.Context, opts model.SyncOptions) (*dto.SyncAllResult, error) {
	s.opts = opts
	return &dto.SyncAllResult{UpdatedListsCount: 3, TotalUpdatedProducts: 7}, nil
}

func (s *stubUseCase) CreatePriceList(_ context.Context, input *dto.CreatePriceListInput) (*model.PriceList, error) {
	s.createInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &model.PriceList{SellingPointID: input.SellingPointID}, nil
}

func (s *stubUseCase) UpdateItemPrice(_ context.Context, input *dto.UpdateItemPriceInput) (*model.PriceListItem, error) {
	s.itemInput = input
	return &model.PriceListItem{ID: input.ItemID, Price: *input.Price}, nil
}

func (s *stubUseCase) GetPriceList(_ context.Context, sellingPointID string) (*model.PriceList, error) {
	return nil, apperror.NotFound("Cennik dla tego punktu sprzedaży nie istnieje")
}

func newServer(uc pricelist.UseCase, token string) http.Handler {
	log := logger.NewNop()
	return httpapi.NewRouter(log, token, handler.NewPriceListHandler(uc, log))
}

func do(c *qt.C, h http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		c.Assert(json.Unmarshal(rec.Body.Bytes(), &out), qt.IsNil)
	}
	return rec, out
}

func TestSyncDefaults(t *testing.T) {
	c := qt.New(t)
	uc := &stubUseCase{}
	srv := newServer(uc, "")

	rec, body := do(c, srv, http.MethodPost, "/pricelists/sp-1/sync", "", "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(uc.sellingPointID, qt.Equals, "sp-1")
	c.Assert(uc.opts.UpdateOutdated, qt.IsTrue)
	c.Assert(uc.opts.AddNew, qt.IsTrue)
	c.Assert(uc.opts.RemoveDeleted, qt.IsFalse)
	c.Assert(uc.opts.UpdatePrices, qt.IsFalse)
	c.Assert(body["updatedCount"], qt.Equals, float64(2))
	c.Assert(body["addedCount"], qt.Equals, float64(1))

	rec, _ = do(c, srv, http.MethodPost, "/pricelists/sp-1/sync", `{"addNew":false,"updatePrices":true}`, "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(uc.opts.UpdateOutdated, qt.IsTrue)
	c.Assert(uc.opts.AddNew, qt.IsFalse)
	c.Assert(uc.opts.UpdatePrices, qt.IsTrue)
}

func TestSyncAll(t *testing.T) {
	c := qt.New(t)
	uc := &stubUseCase{}

	rec, body := do(c, newServer(uc, ""), http.MethodPost, "/pricelists/sync-all", `{"removeDeleted":true}`, "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(uc.opts.RemoveDeleted, qt.IsTrue)
	c.Assert(uc.opts.AddNew, qt.IsTrue)
	c.Assert(body["updatedListsCount"], qt.Equals, float64(3))
	c.Assert(body["totalUpdatedProducts"], qt.Equals, float64(7))
}

func TestErrorsCarryStatus(t *testing.T) {
	c := qt.New(t)
	uc := &stubUseCase{err: apperror.Conflict("Cennik dla tego punktu sprzedaży już istnieje")}
	srv := newServer(uc, "")

	rec, body := do(c, srv, http.MethodPost, "/pricelists/sp-1/create", `{"forceRecreate":false}`, "")
	c.Assert(rec.Code, qt.Equals, http.StatusConflict)
	c.Assert(body["message"], qt.Equals, "Cennik dla tego punktu sprzedaży już istnieje")
	c.Assert(uc.createInput.SellingPointID, qt.Equals, "sp-1")

	rec, _ = do(c, srv, http.MethodGet, "/pricelists/sp-2", "", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)

	rec, _ = do(c, srv, http.MethodPost, "/pricelists/sp-1/sync", `{"updatePrices":`, "")
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}

func TestUpdateItemPrice(t *testing.T) {
	c := qt.New(t)
	uc := &stubUseCase{}

	rec, _ := do(c, newServer(uc, ""), http.MethodPatch, "/pricelists/sp-1/items/it-9", `{"price":120.50}`, "")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(uc.itemInput.SellingPointID, qt.Equals, "sp-1")
	c.Assert(uc.itemInput.ItemID, qt.Equals, "it-9")
	c.Assert(uc.itemInput.Price.Equal(decimal.RequireFromString("120.5")), qt.IsTrue)
	c.Assert(uc.itemInput.DiscountPrice, qt.IsNil)
	c.Assert(uc.itemInput.PriceExceptions, qt.IsNil)
}

func TestWritesNeedToken(t *testing.T) {
	c := qt.New(t)
	uc := &stubUseCase{}
	srv := newServer(uc, "s3cret")

	rec, body := do(c, srv, http.MethodPost, "/pricelists/sp-1/sync", "", "")
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(body["message"], qt.Equals, "unauthorized")
	c.Assert(uc.sellingPointID, qt.Equals, "")

	rec, _ = do(c, srv, http.MethodPost, "/pricelists/sp-1/sync", "", "wrong")
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)

	rec, _ = do(c, srv, http.MethodPost, "/pricelists/sp-1/sync", "", "s3cret")
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	// Reads stay open.
	rec, _ = do(c, srv, http.MethodGet, "/pricelists/sp-1", "", "")
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}
