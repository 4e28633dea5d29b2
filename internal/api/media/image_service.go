package media

import (
	"fmt"
	"net/url"
	"strings"
)

// ImageService composes image references for itinerary entries by
// delegating to an image-generation-by-description endpoint. It only builds
// the URL; rendering happens when the client fetches it.
type ImageService struct {
	baseURL string
}

func NewImageService(baseURL string) *ImageService {
	return &ImageService{baseURL: strings.TrimRight(baseURL, "/")}
}

// DescribeImage returns the image URL for a named place at a destination.
func (s *ImageService) DescribeImage(subjectName, destination string) string {
	phrase := fmt.Sprintf("cinematic photograph of %s in %s", subjectName, destination)
	return fmt.Sprintf("%s/prompt/%s", s.baseURL, url.PathEscape(phrase))
}
