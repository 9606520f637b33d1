package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	Logger "github.com/AlazarStudio/kchr-tourism-backend/utils/log"
)

const (
	maxUploadFiles    = 20
	maxImageFileSize  = 48 << 20  // 48MB per image
	maxDocumentSize   = 256 << 20 // 256MB per document
	uploadsFormField  = "images"
	documentFormField = "document"
)

// UploadImages handles POST /uploads: a bounded multipart batch of images,
// each converted to WebP (GIFs stored verbatim). A single conversion failure
// fails the whole request; there is no partial success reporting.
func (h *Handlers) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart form"})
		return
	}

	files := form.File[uploadsFormField]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No files uploaded"})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Too many files"})
		return
	}

	for _, file := range files {
		if file.Size > maxImageFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
			return
		}
		if !allowedImageUpload(file) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file type"})
			return
		}
	}

	filePaths := []string{}
	for _, file := range files {
		path, err := h.storeImage(c, file)
		if err != nil {
			Logger.Log.Error("fail to convert uploaded image: ", err)
			sentry.CaptureException(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to convert images"})
			return
		}
		filePaths = append(filePaths, path)
	}

	c.JSON(http.StatusOK, gin.H{"filePaths": filePaths})
}

func (h *Handlers) storeImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	converted, err := h.transcoder.Convert(file.Filename, data)
	if err != nil {
		return "", err
	}

	key, err := h.files.Store(c.Request.Context(), converted.FileName, bytes.NewReader(converted.Data))
	if err != nil {
		return "", err
	}
	return h.files.GetUrlFromKey(key), nil
}

// UploadDocument handles POST /upload-doc: a single document stored verbatim
// under a transliterated file name.
func (h *Handlers) UploadDocument(c *gin.Context) {
	file, err := c.FormFile(documentFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File was not uploaded"})
		return
	}
	if file.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store document"})
		return
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(file.Filename, ext)
	fileName := Transliterate(base) + ext

	key, err := h.files.Store(c.Request.Context(), fileName, src)
	if err != nil {
		Logger.Log.Error("fail to store uploaded document: ", err)
		sentry.CaptureException(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filePath": h.files.GetUrlFromKey(key)})
}

// allowedImageUpload checks both the file extension and the declared
// mimetype, matching the historical multer filter.
func allowedImageUpload(file *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return false
	}

	mimetype := file.Header.Get("Content-Type")
	switch mimetype {
	case "image/jpeg", "image/jpg", "image/png", "image/gif":
		return true
	}
	return false
}
