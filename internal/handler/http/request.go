package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/gorilla/schema"
)

const (
	maxBodyBytes  = 64 << 10
	maxFormMemory = 1 << 20
)

var errInvalidUTF8 = errors.New("body is not valid UTF-8")

// formDecoder matches form fields to struct fields by their JSON names.
var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("json")
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeRequest fills dst from a JSON body or from a url-encoded or
// multipart form. Empty form values are dropped. Form values reach dst
// byte for byte; a JSON body that is not valid UTF-8 is rejected, since
// encoding/json would silently replace the offending bytes.
func decodeRequest(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
		}

		fields := make(url.Values, len(r.PostForm))
		for key := range r.PostForm {
			if value := r.PostForm.Get(key); value != "" {
				fields.Set(key, value)
			}
		}
		if err := formDecoder.Decode(dst, fields); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
		}
		return nil
	default:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
		}
		if !utf8.Valid(body) {
			return fmt.Errorf("%w: %w", ErrInvalidRequestBody, errInvalidUTF8)
		}
		if err = json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
		}
		return nil
	}
}
