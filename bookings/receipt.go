package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"tavolo/apperr"
	"tavolo/db"
	"tavolo/models"
	"tavolo/utils"
	"tavolo/xref"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

const hmacSecret = "tavolo-receipt-secret" // keep secure

// receiptPayload returns the signed check-in string embedded in the QR code:
// bookingID|restaurantID|timestamp|signature
func receiptPayload(bookingID, restaurantID string) string {
	data := fmt.Sprintf("%s|%s|%d", bookingID, restaurantID, time.Now().Unix())

	h := hmac.New(sha256.New, []byte(hmacSecret))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintReceipt renders a PDF receipt with an embedded QR code for a
// confirmed booking.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("booking", ps.ByName("bookingid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		utils.Error(w, apperr.FromMongo(err, "Booking", id.Hex()))
		return
	}
	if b.Status != models.BookingConfirmed {
		utils.Error(w, apperr.New(apperr.InvalidState, "Receipt is only available for confirmed bookings"))
		return
	}

	rst, err := xref.DB.Restaurant(ctx, b.RestaurantID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(receiptPayload(b.ID.Hex(), rst.ID.Hex()), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Restaurant: %s", rst.RestaurantName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", b.CustomerName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Guests: %d", b.NumberOfGuests))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("From: %s", b.BookingTime.Format(time.RFC1123)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Until: %s", b.BookingEndTime.Format(time.RFC1123)))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=booking-%s.pdf", b.ID.Hex()))
	w.Write(buf.Bytes())
}
