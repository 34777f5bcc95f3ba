package wardrobe

import (
	"fmt"
	"strings"

	"github.com/raushankrgupta/wardrobe-ai-backend/models"
)

// compatibleCategories is the pairing rule: a top goes with a bottom and
// vice versa; every other category pairs with an accessory.
var compatibleCategories = map[string]string{
	models.CategoryTop:    models.CategoryBottom,
	models.CategoryBottom: models.CategoryTop,
}

// CompatibleCategory returns the category to look in for items that pair
// with a piece of the given category.
func CompatibleCategory(category string) string {
	if c, ok := compatibleCategories[strings.ToLower(category)]; ok {
		return c
	}
	return models.CategoryAccessory
}

// DetailID builds the global detail record id for a wardrobe item.
// The "{userId}-{itemId}" convention is the only cross-link between the
// per-user items and the global detail collection.
func DetailID(userID, itemID string) string {
	return fmt.Sprintf("%s-%s", userID, itemID)
}
