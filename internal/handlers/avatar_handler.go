package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/chai2010/webp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	"gorm.io/gorm"

	"github.com/nailroom/salon-scheduler/internal/httperr"
	"github.com/nailroom/salon-scheduler/internal/middleware"
	"github.com/nailroom/salon-scheduler/internal/models"
	"github.com/nailroom/salon-scheduler/internal/storage"
)

const (
	avatarMaxUploadBytes = 5 << 20
	avatarMaxEdge        = 512
	avatarWebPQuality    = 85
)

type AvatarHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func NewAvatarHandler(db *gorm.DB, uploader storage.Uploader) *AvatarHandler {
	return &AvatarHandler{db: db, uploader: uploader}
}

// Upload replaces a master's profile photo: the submitted image is downscaled,
// re-encoded as WebP and pushed to object storage.
func (h *AvatarHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		httperr.Internal(c, "storage_not_configured", "Object storage is not configured.")
		return
	}

	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	var master models.User
	if err := h.db.
		Where("id = ? AND role = ?", c.Param("id"), models.RoleMaster).
		First(&master).Error; err != nil {

		httperr.NotFound(c, "master_not_found", "Master not found.")
		return
	}

	if master.ID != requesterID {
		httperr.Forbidden(c, "You do not have permission to perform this action.")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_avatar_file", "An avatar file is required.")
		return
	}
	if file.Size > avatarMaxUploadBytes {
		httperr.BadRequest(c, "avatar_too_large", "Avatar must be under 5 MB.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_avatar", "Could not read the upload.")
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, avatarMaxUploadBytes))
	if err != nil {
		httperr.Internal(c, "failed_to_read_avatar", "Could not read the upload.")
		return
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The upload is not a decodable image.")
		return
	}

	encoded, err := encodeAvatar(img)
	if err != nil {
		httperr.Internal(c, "failed_to_encode_avatar", "Could not encode the avatar.")
		return
	}

	key := fmt.Sprintf("avatars/%d-%s.webp", master.ID, uuid.NewString())

	url, err := h.uploader.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_avatar", "Could not store the avatar.")
		return
	}

	master.AvatarURL = url
	if err := h.db.Save(&master).Error; err != nil {
		httperr.Internal(c, "failed_to_update_master", "Could not save the avatar URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func encodeAvatar(img image.Image) ([]byte, error) {
	img = downscale(img, avatarMaxEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: avatarWebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// downscale shrinks img so its longest edge is at most maxEdge, keeping the
// aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
