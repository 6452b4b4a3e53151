package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrMultipleVideos rejects a publish request carrying more than one
// video file.
var ErrMultipleVideos = errors.New("only one video file is allowed")

// UploadStore writes publish attachments to disk and hands back the URLs
// stored on the note.
type UploadStore struct {
	Dir     string
	BaseURL string
}

func NewUploadStore(dir, baseURL string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadStore{Dir: dir, BaseURL: baseURL}, nil
}

// SaveNoteFiles stores every image and the optional single video of a
// publish request. A second video file fails the whole request before
// anything is persisted to the note.
func (s *UploadStore) SaveNoteFiles(images, videos []*multipart.FileHeader) (imageURLs []string, videoURL string, err error) {
	if len(videos) > 1 {
		return nil, "", ErrMultipleVideos
	}

	imageURLs = make([]string, 0, len(images))
	for _, header := range images {
		url, err := s.saveFile(header)
		if err != nil {
			return nil, "", err
		}
		imageURLs = append(imageURLs, url)
	}

	if len(videos) == 1 {
		videoURL, err = s.saveFile(videos[0])
		if err != nil {
			return nil, "", err
		}
	}

	return imageURLs, videoURL, nil
}

func (s *UploadStore) saveFile(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.BaseURL + "/" + name, nil
}
