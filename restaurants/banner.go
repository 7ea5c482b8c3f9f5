package restaurants

import (
	"context"
	"net/http"
	"time"

	"tavolo/apperr"
	"tavolo/db"
	"tavolo/filemgr"
	"tavolo/rdx"
	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadBanner stores a banner image for the restaurant and records the
// generated file name on the document.
func UploadBanner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("restaurant", ps.ByName("restaurantid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		http.Error(w, "Error retrieving banner file", http.StatusBadRequest)
		return
	}

	name, _, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityRestaurant, filemgr.PicBanner, 300)
	if err != nil {
		if filemgr.IsRequestError(err) {
			http.Error(w, "Error saving banner: "+err.Error(), http.StatusBadRequest)
			return
		}
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to save banner image"))
		return
	}

	res, err := db.RestaurantsCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"banner_image": name, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		utils.Error(w, apperr.FromMongo(err, "Restaurant", id.Hex()))
		return
	}
	if res.MatchedCount == 0 {
		utils.Error(w, apperr.New(apperr.NotFound, "Restaurant with ID %q not found", id.Hex()))
		return
	}

	rdx.InvalidateCache(listCacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"banner_image": name})
}
