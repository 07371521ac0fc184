package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/config"
)

var cfg *config.Config

func Init(c *config.Config) {
	cfg = c
}

// currentUser pulls the authenticated user's id and role off the context
// set by the auth middleware.
func currentUser(c *gin.Context) (primitive.ObjectID, string, bool) {
	rawID, ok := c.Get("userId")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return primitive.NilObjectID, "", false
	}
	idHex, _ := rawID.(string)
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return primitive.NilObjectID, "", false
	}

	role := ""
	if rawRole, ok := c.Get("role"); ok {
		role, _ = rawRole.(string)
	}
	return userID, role, true
}

// objectIDParam parses a hex ObjectID path parameter.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return primitive.NilObjectID, false
	}
	return oid, true
}
