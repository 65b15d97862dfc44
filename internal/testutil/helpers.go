package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

// Avatar is the file part of a member form.
type Avatar struct {
	Filename    string
	ContentType string
	Content     []byte
}

// NewMemberFormRequest builds a multipart POST with the given fields, plus the avatar part when avatar isn't nil.
func NewMemberFormRequest(t *testing.T, target string, fields map[string]string, avatar *Avatar) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write field %s: %v", key, err)
		}
	}

	if avatar != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, avatar.Filename))
		header.Set("Content-Type", avatar.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("Failed to create the avatar part: %v", err)
		}
		if _, err := part.Write(avatar.Content); err != nil {
			t.Fatalf("Failed to write the avatar part: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close the form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
