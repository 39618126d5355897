package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Alchinkaz/dream-rent-crm-new/config"
)

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// UploadFile stores an image or document and returns its public URL. Files
// get a generated name; the original name is only used for the extension.
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		zap.L().Error("upload dir creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(config.AppConfig.UploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		zap.L().Error("file save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + name})
}
