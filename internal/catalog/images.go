package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

func isAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// StaticResolver serves opaque image paths from a static asset host,
// e.g. the search API's /static mount.
type StaticResolver struct {
	BaseURL string
}

func (r StaticResolver) Resolve(ref string) (string, error) {
	if isAbsoluteURL(ref) {
		return ref, nil
	}
	if r.BaseURL == "" {
		return "", fmt.Errorf("no static asset base url for %q", ref)
	}
	return strings.TrimSuffix(r.BaseURL, "/") + "/" + strings.TrimPrefix(ref, "/"), nil
}

// CloudinaryResolver treats opaque image paths as Cloudinary public IDs.
type CloudinaryResolver struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryResolver(cloudinaryURL string) (*CloudinaryResolver, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryResolver{cld: cld}, nil
}

func (r *CloudinaryResolver) Resolve(ref string) (string, error) {
	if isAbsoluteURL(ref) {
		return ref, nil
	}

	img, err := r.cld.Image(strings.TrimPrefix(ref, "/"))
	if err != nil {
		return "", fmt.Errorf("cloudinary image %q: %w", ref, err)
	}

	u, err := img.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary url %q: %w", ref, err)
	}
	return u, nil
}
