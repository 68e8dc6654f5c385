package controllers

import (
	"context"
	"net/http"
	"time"

	"go-restaurant-analytics/database"
	"go-restaurant-analytics/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var menuCollection *mongo.Collection = database.OpenCollection(database.Client, "menu")

func listMenuItems(ctx context.Context, restaurantId string) ([]models.MenuItem, error) {
	filter := bson.M{}
	if restaurantId != "" {
		filter["restaurant_id"] = restaurantId
	}
	cursor, err := menuCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func GetMenus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		items, err := listMenuItems(ctx, c.Query("restaurant_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing the menu items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "Menu items fetched successfully",
			"data":    items,
		})
	}
}

func GetMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		menuItemId := c.Param("menu_item_id")
		var item models.MenuItem
		err := menuCollection.FindOne(ctx, bson.M{"menu_item_id": menuItemId}).Decode(&item)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item was not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
