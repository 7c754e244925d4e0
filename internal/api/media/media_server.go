package mediaapi

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	clientpkg "github.com/inkwell-org/backend/internal/client"
)

const maxUploadBytes = 5 << 20

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type MediaServer struct {
	log   *zap.Logger
	media *clientpkg.S3Client
}

func NewMediaServer(log *zap.Logger, media *clientpkg.S3Client) *MediaServer {
	return &MediaServer{
		log:   log,
		media: media,
	}
}

// Upload streams one image from a multipart form to the CDN bucket and
// returns its public URL.
func (s *MediaServer) Upload(c *gin.Context) {
	if s.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB limit"})
		return
	}

	extension := strings.ToLower(filepath.Ext(header.Filename))
	contentType, allowed := allowedExtensions[extension]
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	file, err := header.Open()
	if err != nil {
		s.log.Error("error opening uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}
	defer file.Close()

	key := "uploads/" + uuid.New().String() + extension
	if err := s.media.UploadFile(c.Request.Context(), key, file, contentType); err != nil {
		s.log.Error("error uploading file to CDN", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": s.media.PublicURL(key)})
}
