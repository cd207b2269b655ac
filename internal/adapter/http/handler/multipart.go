package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/usecase"
)

const (
	maxImageBytes = 10 << 20
	maxFormBytes  = 1 << 20
	// maxRequestBytes admits a full set of maximum-size images plus the text fields.
	maxRequestBytes = domain.MaxImages*maxImageBytes + maxFormBytes
	// maxMemoryBytes is kept in memory by ParseMultipartForm; larger parts spill to temp files.
	maxMemoryBytes = 32 << 20
	imagesField    = "images"
)

// parseListingForm reads the listing fields and image parts of a
// multipart/form-data request.
func parseListingForm(w http.ResponseWriter, r *http.Request) (domain.ListingFields, []usecase.ImageUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		return domain.ListingFields{}, nil, fmt.Errorf("%w: invalid multipart form: %v", domain.ErrInvalidInput, err)
	}

	fields := domain.ListingFields{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Price:        r.FormValue("price"),
		Area:         r.FormValue("area"),
		Location:     r.FormValue("location"),
		PropertyType: domain.PropertyType(r.FormValue("property_type")),
		ContactName:  r.FormValue("contact_name"),
		ContactPhone: r.FormValue("contact_phone"),
		ContactEmail: r.FormValue("contact_email"),
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[imagesField]
	}
	if len(headers) > domain.MaxImages {
		return fields, nil, fmt.Errorf("%w: maximum %d images allowed", domain.ErrInvalidInput, domain.MaxImages)
	}

	images := make([]usecase.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		img, err := readImage(fh)
		if err != nil {
			return fields, nil, err
		}
		images = append(images, img)
	}
	return fields, images, nil
}

func readImage(fh *multipart.FileHeader) (usecase.ImageUpload, error) {
	if fh.Size > maxImageBytes {
		return usecase.ImageUpload{}, fmt.Errorf("%w: image %s exceeds %d bytes", domain.ErrInvalidInput, fh.Filename, maxImageBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return usecase.ImageUpload{}, fmt.Errorf("%w: cannot read image %s: %v", domain.ErrInvalidInput, fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return usecase.ImageUpload{}, fmt.Errorf("%w: cannot read image %s: %v", domain.ErrInvalidInput, fh.Filename, err)
	}
	if len(data) > maxImageBytes {
		return usecase.ImageUpload{}, fmt.Errorf("%w: image %s exceeds %d bytes", domain.ErrInvalidInput, fh.Filename, maxImageBytes)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return usecase.ImageUpload{FileName: fh.Filename, ContentType: contentType, Data: data}, nil
}
