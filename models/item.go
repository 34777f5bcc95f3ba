package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clothing categories recognised by the compatibility rule.
const (
	CategoryTop       = "top"
	CategoryBottom    = "bottom"
	CategoryAccessory = "accessory"
)

// Ingestion statuses recorded on a wardrobe item as the upload flow
// progresses. An item stuck in "image_failed" has no image and no
// detail record.
const (
	ItemStatusPendingImage = "pending_image"
	ItemStatusImageFailed  = "image_failed"
	ItemStatusComplete     = "complete"
)

// Item represents a single wardrobe item owned by a user
type Item struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              string             `bson:"user_id" json:"user_id"`
	Name                string             `bson:"name" json:"name"`
	ClothingType        string             `bson:"clothing_type" json:"clothing_type"`
	ClothingCategory    string             `bson:"clothing_category" json:"clothing_category"`
	SustainabilityScore float64            `bson:"sustainability_score" json:"sustainability_score"`
	ImageURL            string             `bson:"image_url,omitempty" json:"image_url,omitempty"` // S3 key, presigned at response time
	CompatibleItems     []string           `bson:"compatible_items,omitempty" json:"compatible_items,omitempty"`
	Status              string             `bson:"status" json:"status"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

// ItemDetails is the enriched, globally keyed record for one wardrobe item.
// Its ID is always "{userId}-{wardrobeItemId}"; that convention is the only
// link back to the per-user item and nothing below the application enforces it.
type ItemDetails struct {
	ID                  string    `bson:"_id" json:"id"`
	UserID              string    `bson:"user_id" json:"user_id"`
	Name                string    `bson:"name" json:"name"`
	ClothingType        string    `bson:"clothing_type" json:"clothing_type"`
	ClothingCategory    string    `bson:"clothing_category" json:"clothing_category"`
	SustainabilityScore float64   `bson:"sustainability_score" json:"sustainability_score"`
	ImageURL            string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Material            string    `bson:"material" json:"material"`
	FabricComposition   string    `bson:"fabric_composition" json:"fabric_composition"`
	LongevityScore      float64   `bson:"longevity_score" json:"longevity_score"`
	CO2Consumption      string    `bson:"co2_consumption" json:"co2_consumption"`
	MaintenanceTips     []string  `bson:"maintenance_tips" json:"maintenance_tips"`
	CompatibleItems     []string  `bson:"compatible_items,omitempty" json:"compatible_items,omitempty"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
}
