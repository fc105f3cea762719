package models

// Category groups products
// DB: categories
type Category struct {
	BaseModel
	Name        string  `gorm:"column:name;size:100;not null;index" json:"name"`
	Description *string `gorm:"column:description;type:text" json:"description"`

	// Relations
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// Product represents a catalog item
// DB: products
type Product struct {
	BaseModel
	Name        string  `gorm:"column:name;size:255;not null" json:"name"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Price       float64 `gorm:"column:price;not null;default:0" json:"price"`
	ImageURL    *string `gorm:"column:image_url;type:text" json:"image_url"`
	Stock       int     `gorm:"column:stock;not null;default:0" json:"stock"`
	CategoryID  string  `gorm:"column:category_id;size:36;not null;index:idx_products_category" json:"category_id"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// DeliveryZone is a city the store delivers to
// DB: delivery_zones
type DeliveryZone struct {
	BaseModel
	City          string  `gorm:"column:city;size:100;not null;index" json:"city"`
	Fee           float64 `gorm:"column:fee;not null;default:0" json:"fee"`
	EstimatedDays string  `gorm:"column:estimated_days;size:50" json:"estimated_days"`
	IsActive      bool    `gorm:"column:is_active;not null;index" json:"is_active"`
}

func (DeliveryZone) TableName() string {
	return "delivery_zones"
}
