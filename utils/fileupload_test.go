package utils

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartFileHeader builds a real multipart.FileHeader by writing a form
// and parsing it back through the HTTP machinery.
func multipartFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("attachment", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["attachment"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidateAttachment(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int
		wantCode string
	}{
		{"png accepted", "photo.png", 100, ""},
		{"jpeg accepted", "photo.JPEG", 100, ""},
		{"pdf accepted", "bill.pdf", 100, ""},
		{"executable rejected", "malware.exe", 100, "INVALID_FILE_FORMAT"},
		{"no extension rejected", "README", 100, "INVALID_FILE_FORMAT"},
		{"oversized rejected", "huge.png", MaxFileSize + 1, "FILE_TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: int64(tt.size)}

			err := ValidateAttachment(header)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var uploadErr *FileUploadError
			require.True(t, errors.As(err, &uploadErr))
			assert.Equal(t, tt.wantCode, uploadErr.Code)
		})
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd", "passwd"},
		{"my photo (1).png", "my_photo_1_.png"},
		{"..", "attachment"},
		{"", "attachment"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SafeFilename(tt.in), "input %q", tt.in)
	}
}

func TestUniqueFilenameNeverCollides(t *testing.T) {
	first := UniqueFilename("photo.png")
	second := UniqueFilename("photo.png")
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "_photo.png"))
}

func TestSaveUploadedFile(t *testing.T) {
	uploadDir := filepath.Join(t.TempDir(), "uploads")
	header := multipartFileHeader(t, "meter reading.png", []byte("image bytes"))

	filename, err := SaveUploadedFile(header, uploadDir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, "_meter_reading.png"))

	content, err := os.ReadFile(filepath.Join(uploadDir, filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), content)
}
