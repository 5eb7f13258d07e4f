package handlers

import (
	"net/http"

	"pocketa-server/src/models"
	"pocketa-server/src/util"
)

func GetCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, models.ValidCategories)
	}
}
