package handlers

import (
	"net/http"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/config"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
)

var cloudinaryService *services.CloudinaryService

func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// allowed upload categories map to the folder convention {category}_images/{uid}
var uploadCategories = map[string]bool{
	"waste":   true,
	"food":    true,
	"profile": true,
	"product": true,
}

// UploadImage handles image uploads to Cloudinary. Clients upload images
// before creating the waste/food request and pass the returned URLs along.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	if cloudinaryService == nil {
		writeError(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	category := r.URL.Query().Get("category")
	if !uploadCategories[category] {
		writeError(w, http.StatusBadRequest, "Invalid upload category")
		return
	}

	url, err := cloudinaryService.UploadImageFromHeader(r.Context(), fileHeader, category, uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "File uploaded successfully",
		Data:    map[string]string{"url": url},
	})
}
