package models

type UserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type TokenResp struct {
	Token string `json:"token"`
}

type CategoryReq struct {
	Name string `json:"name" validate:"required"`
}

type CategoryResp struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
}

type SiteReq struct {
	CategoryID uint64 `json:"category_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	URL        string `json:"url" validate:"required"`
	Logo       string `json:"logo"`
}

type SiteUpdateReq struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
	Logo string `json:"logo"`
}

type SiteResp struct {
	ID         uint64 `json:"id"`
	CategoryID uint64 `json:"category_id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Logo       string `json:"logo"`
	Visits     int    `json:"visits"`
	OrderIndex int    `json:"order_index"`
}

// ReorderReq carries the full id list in its new display order.
type ReorderReq struct {
	IDs []uint64 `json:"ids" validate:"required,min=1"`
}

type SiteReorderReq struct {
	CategoryID uint64   `json:"category_id" validate:"required"`
	IDs        []uint64 `json:"ids" validate:"required,min=1"`
}

type SettingsReq struct {
	SiteTitle           string `json:"site_title" validate:"required"`
	LogoType            string `json:"logo_type" validate:"required,oneof=url upload emoji"`
	LogoContent         string `json:"logo_content"`
	DefaultSearchEngine string `json:"default_search_engine" validate:"required"`
	City                string `json:"city"`
	Temperature         string `json:"temperature"`
	WeatherCondition    string `json:"weather_condition"`
}

type SettingsResp struct {
	SiteTitle           string `json:"site_title"`
	LogoType            string `json:"logo_type"`
	LogoContent         string `json:"logo_content"`
	DefaultSearchEngine string `json:"default_search_engine"`
	City                string `json:"city"`
	Temperature         string `json:"temperature"`
	WeatherCondition    string `json:"weather_condition"`
}

type ImportResp struct {
	Categories int `json:"categories"`
	Sites      int `json:"sites"`
}

type LogoUploadReq struct {
	ImageData string `json:"imageData" validate:"required"`
	FileName  string `json:"fileName"`
}

type LogoUploadResp struct {
	PublicURL string `json:"publicUrl"`
}
