package domain

import "github.com/shopspring/decimal"

// Category is a cuisine or meal-type grouping restaurants are filed under.
type Category struct {
	// ID is the CMS document id.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Slug is the URL-safe identifier.
	Slug string `json:"slug"`
	// IconURL is the category icon image.
	IconURL string `json:"icon_url,omitempty"`
}

// Restaurant is a storefront listing with its menu.
type Restaurant struct {
	// ID is the CMS document id.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Slug is the URL-safe identifier.
	Slug string `json:"slug"`
	// WorkingHours is the free-text opening hours.
	WorkingHours string `json:"working_hours,omitempty"`
	// Types are cuisine labels.
	Types []string `json:"types,omitempty"`
	// AboutUs is the free-text description.
	AboutUs string `json:"about_us,omitempty"`
	// Address is the street address.
	Address string `json:"address,omitempty"`
	// BannerURL is the hero image.
	BannerURL string `json:"banner_url,omitempty"`
	// Menu holds the menu sections, populated only on detail reads.
	Menu []MenuSection `json:"menu,omitempty"`
}

// MenuSection groups menu items under a heading (e.g. Starters).
type MenuSection struct {
	// ID is the CMS document id.
	ID string `json:"id"`
	// Category is the section heading.
	Category string `json:"category"`
	// Items are the dishes in the section.
	Items []MenuItem `json:"items"`
}

// MenuItem is a single orderable dish.
type MenuItem struct {
	// ID is the CMS document id.
	ID string `json:"id"`
	// Name is the dish name.
	Name string `json:"name"`
	// Description is the dish description.
	Description string `json:"description,omitempty"`
	// Price is the dish price.
	Price decimal.Decimal `json:"price"`
	// ImageURL is the dish image.
	ImageURL string `json:"image_url,omitempty"`
}
