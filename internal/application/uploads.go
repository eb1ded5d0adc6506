package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

type UploadKind string

const (
	UploadCV    UploadKind = "cv"
	UploadImage UploadKind = "image"
	UploadMedia UploadKind = "media"
)

const mb = 1 << 20

var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type uploadRule struct {
	maxBytes int64
	types    []string
}

var uploadRules = map[UploadKind]uploadRule{
	UploadCV: {
		maxBytes: 10 * mb,
		types: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	},
	UploadImage: {maxBytes: 5 * mb, types: imageTypes},
	UploadMedia: {
		maxBytes: 50 * mb,
		types:    append(append([]string{}, imageTypes...), "video/mp4", "video/webm", "video/quicktime"),
	},
}

func ParseUploadKind(s string) (UploadKind, error) {
	kind := UploadKind(strings.ToLower(s))
	if _, ok := uploadRules[kind]; !ok {
		return "", domain.ErrInvalidInput
	}
	return kind, nil
}

// MaxUploadBytes is the largest body any upload kind accepts.
func MaxUploadBytes() int64 {
	var max int64
	for _, rule := range uploadRules {
		if rule.maxBytes > max {
			max = rule.maxBytes
		}
	}
	return max
}

type UploadService struct {
	storage ports.BlobStorage
	logger  ports.Logger
}

func NewUploadService(storage ports.BlobStorage, logger ports.Logger) *UploadService {
	return &UploadService{storage: storage, logger: logger}
}

// Upload stores body under <kind>/<userID>/. The content type is sniffed from
// the bytes; the client-supplied name only matters for logging.
func (s *UploadService) Upload(ctx context.Context, actor Actor, kind UploadKind, filename string, body io.Reader) (domain.StoredFile, error) {
	if actor.UserID == "" {
		return domain.StoredFile{}, domain.ErrUnauthenticated
	}
	rule, ok := uploadRules[kind]
	if !ok {
		return domain.StoredFile{}, domain.ErrInvalidInput
	}
	data, err := io.ReadAll(io.LimitReader(body, rule.maxBytes+1))
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return domain.StoredFile{}, domain.ErrInvalidInput
	}
	if int64(len(data)) > rule.maxBytes {
		return domain.StoredFile{}, domain.ErrFileTooLarge
	}
	mtype := mimetype.Detect(data)
	if !allowedType(mtype, rule.types) {
		s.logger.Warn(ctx, "upload rejected", "kind", kind, "filename", filename, "detected", mtype.String())
		return domain.StoredFile{}, domain.ErrUnsupportedMediaType
	}
	key := fmt.Sprintf("%s/%s/%s%s", kind, actor.UserID, uuid.NewString(), mtype.Extension())
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	file, err := s.storage.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.StoredFile{}, err
	}
	s.logger.Info(ctx, "file uploaded", "path", file.Path, "size", file.Size)
	return file, nil
}

func allowedType(mtype *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// Delete removes a file previously uploaded by the same user.
func (s *UploadService) Delete(ctx context.Context, actor Actor, filePath string) error {
	if actor.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if !OwnsPath(actor.UserID, filePath) {
		return domain.ErrPermissionDeny
	}
	return s.storage.Delete(ctx, filePath)
}

// OwnsPath reports whether filePath lies in one of userID's upload folders.
func OwnsPath(userID, filePath string) bool {
	if userID == "" || filePath == "" || path.Clean(filePath) != filePath {
		return false
	}
	parts := strings.Split(filePath, "/")
	if len(parts) != 3 || parts[1] != userID || parts[2] == "" {
		return false
	}
	_, ok := uploadRules[UploadKind(parts[0])]
	return ok
}
