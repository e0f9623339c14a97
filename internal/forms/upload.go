package forms

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/agrimitra/agrimitra/internal/llm"
)

// ErrTooLarge marks an upload over the size limit.
var ErrTooLarge = errors.New("upload too large")

// Upload is a file read from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReadUpload reads one multipart file, rejecting it when it exceeds limit
// bytes. The content type is sniffed from the data; the declared type is
// used only when sniffing finds nothing specific.
func ReadUpload(file multipart.File, header *multipart.FileHeader, limit int64) (*Upload, error) {
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}

	ct := http.DetectContentType(data)
	if ct == "application/octet-stream" || strings.HasPrefix(ct, "text/plain") {
		if declared := header.Header.Get("Content-Type"); declared != "" {
			ct = declared
		}
	}
	if i := strings.Index(ct, ";"); i != -1 {
		ct = strings.TrimSpace(ct[:i])
	}
	return &Upload{Filename: header.Filename, ContentType: strings.ToLower(ct), Data: data}, nil
}

func (fd Field) parseUpload(u *Upload) (string, string) {
	if u == nil || len(u.Data) == 0 {
		if fd.Required {
			return "", fd.requiredMessage()
		}
		return "", ""
	}
	if prefix := strings.TrimSuffix(fd.Accept, "*"); prefix != "" && !strings.HasPrefix(u.ContentType, prefix) {
		return "", fd.requiredMessage()
	}
	return llm.EncodeDataURI(u.ContentType, u.Data), ""
}
