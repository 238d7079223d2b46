package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"

	"Backend/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// itemsCacheKey is the Redis ZSET holding the serialized catalog, scored by
// item id. Checkout drops it when sales counters move.
const itemsCacheKey = "items"

// GetItemListHandler returns the whole catalog, served from the Redis cache
// when possible and rebuilt from the database otherwise.
func GetItemListHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	redisItems, err := rdb.ZRange(c, itemsCacheKey, 0, -1).Result()
	if err != nil || len(redisItems) == 0 {
		var items []models.Item
		if err := db.Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Could not read item list",
			})
			return
		}

		rdb.Del(c, itemsCacheKey)

		for _, item := range items {
			itemJSON, err := json.Marshal(item)
			if err != nil {
				log.Printf("could not serialize item %d: %v", item.ID, err)
				continue
			}
			err = rdb.ZAdd(c, itemsCacheKey, redis.Z{
				Score:  float64(item.ID),
				Member: itemJSON,
			}).Err()
			if err != nil {
				log.Printf("could not cache item %d: %v", item.ID, err)
			}
		}

		itemsData := make([]gin.H, 0, len(items))
		for _, item := range items {
			itemsData = append(itemsData, serializeItem(item))
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Item list read successfully",
			"items":   itemsData,
		})
		return
	}

	itemsData := make([]gin.H, 0, len(redisItems))
	for _, redisItem := range redisItems {
		var item models.Item
		if err := json.Unmarshal([]byte(redisItem), &item); err != nil {
			log.Printf("could not deserialize cached item: %v", err)
			continue
		}
		itemsData = append(itemsData, serializeItem(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item list read successfully",
		"items":   itemsData,
	})
}

// GetBestSellersHandler returns the ten items with the highest sales
// counters.
func GetBestSellersHandler(c *gin.Context, db *gorm.DB) {
	var items []models.Item
	err := db.Order("sales desc").Limit(10).Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not read best sellers",
		})
		return
	}

	itemsData := make([]gin.H, 0, len(items))
	for _, item := range items {
		itemsData = append(itemsData, serializeItem(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Best sellers read successfully",
		"items":   itemsData,
	})
}

// GetNewArrivalsHandler returns the ten most recently added items.
func GetNewArrivalsHandler(c *gin.Context, db *gorm.DB) {
	var items []models.Item
	err := db.Order("id desc").Limit(10).Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not read new arrivals",
		})
		return
	}

	itemsData := make([]gin.H, 0, len(items))
	for _, item := range items {
		itemsData = append(itemsData, serializeItem(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "New arrivals read successfully",
		"items":   itemsData,
	})
}

// GetRecommendationsHandler returns up to ten random items for the home
// page.
func GetRecommendationsHandler(c *gin.Context, db *gorm.DB) {
	var items []models.Item
	if err := db.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not read recommendations",
		})
		return
	}

	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	if len(items) > 10 {
		items = items[:10]
	}

	itemsData := make([]gin.H, 0, len(items))
	for _, item := range items {
		itemsData = append(itemsData, serializeItem(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recommendations read successfully",
		"items":   itemsData,
	})
}

// SearchItemsHandler searches items by name substring, case-insensitively.
func SearchItemsHandler(c *gin.Context, db *gorm.DB) {
	query := c.DefaultQuery("q", "")

	var items []models.Item
	err := db.Where("name LIKE ?", "%"+query+"%").Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not search items",
		})
		return
	}

	itemsData := make([]gin.H, 0, len(items))
	for _, item := range items {
		itemsData = append(itemsData, serializeItem(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Items searched successfully",
		"items":   itemsData,
	})
}

// GetItemDataHandler returns one item's detail, including its description.
func GetItemDataHandler(c *gin.Context, db *gorm.DB) {
	itemID := c.Param("itemID")

	var item models.Item
	err := db.First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Could not read item data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item data read successfully",
		"item":    serializeItem(item),
	})
}
