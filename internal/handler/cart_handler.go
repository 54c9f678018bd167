package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/greencart/internal/cart"
	"go.uber.org/zap"
)

const sessionCartKey = "cart"

type cartItemPayload struct {
	StrainID uint    `json:"strain_id"`
	Grams    float64 `json:"grams"`
}

type cartQuantityPayload struct {
	Grams float64 `json:"grams"`
}

// loadCart restores the session cart against the current catalog. Lines
// whose strain has disappeared are dropped.
func (a *API) loadCart(c *gin.Context) (*cart.Cart, error) {
	session := sessions.Default(c)
	raw, _ := session.Get(sessionCartKey).(string)
	if raw == "" {
		return cart.New(), nil
	}

	var entries []cart.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		a.logger.Warn("discarding unreadable cart", zap.Error(err))
		return cart.New(), nil
	}

	snapshot, err := a.catalog.Snapshot()
	if err != nil {
		return nil, err
	}
	items := make(map[uint]cart.Item, len(snapshot))
	for _, strain := range snapshot {
		items[strain.ID] = cart.Item{StrainID: strain.ID, Name: strain.Name, Price: strain.Price}
	}

	restored, missing := cart.Restore(entries, func(id uint) (cart.Item, bool) {
		item, ok := items[id]
		return item, ok
	})
	if len(missing) > 0 {
		a.logger.Info("dropped unavailable cart lines", zap.Uints("strain_ids", missing))
	}
	return restored, nil
}

func (a *API) saveCart(c *gin.Context, cc *cart.Cart) error {
	encoded, err := json.Marshal(cc.Snapshot())
	if err != nil {
		return err
	}
	session := sessions.Default(c)
	if cc.IsEmpty() {
		session.Delete(sessionCartKey)
	} else {
		session.Set(sessionCartKey, string(encoded))
	}
	return session.Save()
}

func (a *API) respondCart(c *gin.Context, status int, cc *cart.Cart) {
	if err := a.saveCart(c, cc); err != nil {
		a.fail(c, http.StatusInternalServerError, "session_failed")
		return
	}
	c.JSON(status, gin.H{"cart": cartToPayload(cc)})
}

// GetCart returns the session cart with current prices.
func (a *API) GetCart(c *gin.Context) {
	cc, err := a.loadCart(c)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	a.respondCart(c, http.StatusOK, cc)
}

// AddCartItem adds grams of a strain, merging with an existing line.
// Grams defaults to one unit.
func (a *API) AddCartItem(c *gin.Context) {
	var payload cartItemPayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return
	}
	if payload.Grams < 0 {
		a.handleServiceError(c, fmt.Errorf("%w: %.1fg", cart.ErrInvalidQuantity, payload.Grams))
		return
	}
	if payload.Grams == 0 {
		payload.Grams = cart.UnitGrams
	}

	strain, err := a.catalog.Get(payload.StrainID)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	cc, err := a.loadCart(c)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}

	merged := payload.Grams
	if line, ok := cc.Line(strain.ID); ok {
		merged += line.Grams
	}
	if err := cart.DefaultPolicy.Validate(merged); err != nil {
		a.handleServiceError(c, err)
		return
	}

	cc.Add(cart.Item{StrainID: strain.ID, Name: strain.Name, Price: strain.Price}, payload.Grams)
	a.respondCart(c, http.StatusOK, cc)
}

// UpdateCartItem replaces a line's quantity. Zero or less removes the line.
func (a *API) UpdateCartItem(c *gin.Context) {
	strainID, err := parseUintParam(c, "strainId")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	var payload cartQuantityPayload
	if !bindJSON(c, &payload, a.t(c, "invalid_request")) {
		return
	}

	cc, err := a.loadCart(c)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	if _, ok := cc.Line(strainID); !ok {
		a.fail(c, http.StatusNotFound, "cart_item_not_found")
		return
	}
	if payload.Grams > 0 {
		if err := cart.DefaultPolicy.Validate(payload.Grams); err != nil {
			a.handleServiceError(c, err)
			return
		}
	}

	cc.SetQuantity(strainID, payload.Grams)
	a.respondCart(c, http.StatusOK, cc)
}

// RemoveCartItem drops a line. Removing an absent strain is not an error.
func (a *API) RemoveCartItem(c *gin.Context) {
	strainID, err := parseUintParam(c, "strainId")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "invalid_id")
		return
	}

	cc, err := a.loadCart(c)
	if err != nil {
		a.handleServiceError(c, err)
		return
	}
	cc.Remove(strainID)
	a.respondCart(c, http.StatusOK, cc)
}

// ClearCart empties the cart.
func (a *API) ClearCart(c *gin.Context) {
	a.respondCart(c, http.StatusOK, cart.New())
}
