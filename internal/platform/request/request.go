// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the body
shapes the stub API accepts (JSON and multipart uploads), ensuring consistent
error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/ctxutil"
	"github.com/taibuivan/aidash/internal/platform/sec"
	"github.com/taibuivan/aidash/internal/platform/validate"
)

// Upload is one file received in a multipart body, read fully into memory.
type Upload struct {
	Name    string
	Size    int64
	Content []byte
}

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ParseMultipart parses a multipart body capped at maxBytes.

Returns:
  - error: a VALIDATION_ERROR when the body is not multipart or is too large
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)
	if err := request.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.ValidationError(fmt.Sprintf("Upload exceeds %d bytes", maxBytes))
		}
		return apperr.ValidationError("Invalid multipart payload")
	}
	return nil
}

/*
Files reads every file uploaded under field. [ParseMultipart] must run first.

Returns:
  - []Upload: possibly empty, in upload order
  - error: an internal error when a stored part cannot be read back
*/
func Files(request *http.Request, field string) ([]Upload, error) {
	if request.MultipartForm == nil {
		return nil, nil
	}

	headers := request.MultipartForm.File[field]
	uploads := make([]Upload, 0, len(headers))
	for _, header := range headers {
		content, err := readPart(header)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("request_read_upload_failed: %w", err))
		}
		uploads = append(uploads, Upload{Name: header.Filename, Size: header.Size, Content: content})
	}
	return uploads, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
