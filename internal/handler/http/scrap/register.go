package scrap

import (
	"net/http"

	scrapUC "newspulse/internal/usecase/scrap"
)

// Register registers the scrap list routes with mux.
func Register(mux *http.ServeMux, svc *scrapUC.Service, catalog scrapUC.CategoryRanker) {
	mux.Handle("GET    /scraps", ListHandler{Svc: svc, Catalog: catalog})
	mux.Handle("DELETE /scraps/{newsId}", UnscrapHandler{Svc: svc})
}
