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

var tableCollection *mongo.Collection = database.OpenCollection(database.Client, "table")

func listTables(ctx context.Context, restaurantId string) ([]models.Table, error) {
	filter := bson.M{}
	if restaurantId != "" {
		filter["restaurant_id"] = restaurantId
	}
	cursor, err := tableCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func GetTables() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tables, err := listTables(ctx, c.Query("restaurant_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing tables"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "Tables fetched successfully",
			"data":    tables,
		})
	}
}

func GetTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tableId := c.Param("table_id")
		var table models.Table
		err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table was not found"})
			return
		}
		c.JSON(http.StatusOK, table)
	}
}
