package controllers

import (
	"net/http"

	"github.com/angelmondragon/kitcart/api/responses"
	"github.com/angelmondragon/kitcart/internal/catalog"
	pkgerrors "github.com/angelmondragon/kitcart/pkg/errors"
	"github.com/angelmondragon/kitcart/pkg/logger"
)

// CatalogReader exposes the product families served to the storefront.
type CatalogReader interface {
	Families() []catalog.Family
}

// CatalogList returns every product family with prices formatted to cents.
func CatalogList(cat CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		families := cat.Families()
		resp := catalogResponse{Families: make([]familyResponse, 0, len(families))}
		for _, fam := range families {
			out := familyResponse{
				ID:        fam.ID,
				Name:      fam.Name,
				Stackable: fam.Stackable,
				Products:  make([]productResponse, 0, len(fam.Products)),
			}
			for _, p := range fam.Products {
				out.Products = append(out.Products, productResponse{
					ID:    string(p.ID),
					Name:  p.Name,
					Price: p.Price.StringFixed(2),
				})
			}
			resp.Families = append(resp.Families, out)
		}
		responses.WriteSuccess(w, resp)
	}
}

type catalogResponse struct {
	Families []familyResponse `json:"families"`
}

type familyResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Stackable bool              `json:"stackable"`
	Products  []productResponse `json:"products"`
}

type productResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}
