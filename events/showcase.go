package events

import (
	"context"
	"net/http"
	"time"

	"tavolo/apperr"
	"tavolo/db"
	"tavolo/filemgr"
	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadShowcase stores a showcase image for the event and records the
// generated file name on the document. A re-upload replaces the image.
func UploadShowcase(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("event", ps.ByName("eventid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("showcase")
	if err != nil {
		http.Error(w, "Missing showcase file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name, thumb, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityEvent, filemgr.PicShowcase, 300)
	if err != nil {
		if filemgr.IsRequestError(err) {
			http.Error(w, "Error saving showcase: "+err.Error(), http.StatusBadRequest)
			return
		}
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to save showcase image"))
		return
	}

	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"image_showcase": name}},
	)
	if err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to update event showcase"))
		return
	}
	if res.MatchedCount == 0 {
		utils.Error(w, apperr.New(apperr.NotFound, "Event with ID %q not found", id.Hex()))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"image_showcase": name,
		"thumbnail":      thumb,
	})
}
