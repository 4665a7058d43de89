package dto

type CatalogSourcesResponse struct {
	Sources []string `json:"sources"`
	Schema  []string `json:"schema"`
}

type CatalogRecordsResponse struct {
	Source  string              `json:"source"`
	Count   int                 `json:"count"`
	Records []map[string]string `json:"records"`
}

type RefreshCatalogRequest struct {
	Source string `json:"source" validate:"required"`
}

type RefreshCatalogResponse struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}
