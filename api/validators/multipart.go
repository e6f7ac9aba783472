package validators

import (
	"io"
	"mime"
	"net/http"
	"strings"

	pkgerrors "github.com/kaamsetu/gigwork-backend/pkg/errors"
)

const maxMultipartMemory = 8 << 20

// MultipartFile is a file part lifted out of a multipart request. Callers
// own Body and must close it.
type MultipartFile struct {
	Filename string
	Body     io.ReadCloser
}

// DecodeMultipartBody decodes a request that carries its JSON payload in a
// multipart part named jsonPart, optionally accompanied by a file part named
// filePart. Plain application/json requests are decoded directly and return
// a nil file.
func DecodeMultipartBody(r *http.Request, jsonPart, filePart string, dest any) (*MultipartFile, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, DecodeJSONBody(r, dest)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	payload := r.FormValue(jsonPart)
	if payload == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing form payload").
			WithDetails(map[string]string{jsonPart: "required"})
	}
	if err := DecodeJSON(strings.NewReader(payload), dest); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(filePart)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file upload")
	}
	return &MultipartFile{Filename: header.Filename, Body: file}, nil
}
