package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/kitcart/api/middleware"
	"github.com/angelmondragon/kitcart/api/responses"
	"github.com/angelmondragon/kitcart/api/validators"
	cartsvc "github.com/angelmondragon/kitcart/internal/cart"
	pkgerrors "github.com/angelmondragon/kitcart/pkg/errors"
	"github.com/angelmondragon/kitcart/pkg/logger"
)

const maxNameLength = 200

// CartFetch returns the session cart without changing it.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (cartsvc.Result, error) {
		return svc.Get(r.Context(), sessionID)
	})
}

// CartAddItem runs an add request through the tier rules. Rejections are a 200 with a
// warning notice; only malformed requests produce an error envelope.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (cartsvc.Result, error) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return cartsvc.Result{}, err
		}
		input, err := payload.toInput()
		if err != nil {
			return cartsvc.Result{}, err
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, string(input.ID))
		}
		return svc.Add(ctx, sessionID, input)
	})
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (cartsvc.Result, error) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if err := validators.ValidateProductID(productID); err != nil {
			return cartsvc.Result{}, err
		}
		return svc.Remove(r.Context(), sessionID, cartsvc.ProductID(productID))
	})
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (cartsvc.Result, error) {
		return svc.Clear(r.Context(), sessionID)
	})
}

func CartCheckout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (cartsvc.Result, error) {
		return svc.Checkout(r.Context(), sessionID)
	})
}

type cartAction func(r *http.Request, sessionID string) (cartsvc.Result, error)

func cartHandler(svc cartsvc.Service, logg *logger.Logger, action cartAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session missing"))
			return
		}

		result, err := action(r, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(result))
	}
}

type addItemRequest struct {
	ID    string `json:"id" validate:"required,max=128,product_id"`
	Name  string `json:"name" validate:"max=200"`
	Price string `json:"price" validate:"money"`
}

func (p addItemRequest) toInput() (cartsvc.AddInput, error) {
	input := cartsvc.AddInput{
		ID:   cartsvc.ProductID(strings.TrimSpace(p.ID)),
		Name: validators.SanitizeString(p.Name, maxNameLength),
	}
	if raw := strings.TrimSpace(p.Price); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return cartsvc.AddInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price").
				WithDetails(map[string]string{"price": raw})
		}
		input.Price = &price
	}
	return input, nil
}
