// Package models contains the wire types of the gateway API
package models

import "time"

// ObjectSummary mirrors one entry of the bucket listing
type ObjectSummary struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ActionRequest is the JSON body of a POST to the action endpoint.
// Filename and ContentType are only read by the actions that need them.
type ActionRequest struct {
	Action      string `json:"action"`
	Password    string `json:"password"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// UploadURLRequest holds the fields generate-upload-url requires
type UploadURLRequest struct {
	Filename    string `validate:"required"`
	ContentType string `validate:"required"`
}

// DownloadURLRequest holds the fields generate-download-url requires
type DownloadURLRequest struct {
	Filename string `validate:"required"`
}

// FilesResponse is returned by list-files
type FilesResponse struct {
	Files []ObjectSummary `json:"files"`
}

// URLResponse carries a presigned URL
type URLResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is returned for any failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
