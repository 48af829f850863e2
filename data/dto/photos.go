package dto

// AttachPhotoRequestBody defines the request body for attaching an already hosted photo.
type AttachPhotoRequestBody struct {
	URL string `json:"url"`
}

// UpdatePhotoRequestBody defines the request body for UpdatePhoto service.
type UpdatePhotoRequestBody struct {
	URL *string `json:"url"`
}
