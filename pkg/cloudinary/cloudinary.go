package cloudinary

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"

	"github.com/danakita/borrower-onboarding/config"
)

// InitCloudinary builds the media client the upload endpoint stores document
// files with.
func InitCloudinary(cfg *config.Config) (*cloudinary.Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.CLOUDINARY_CLOUD,
		cfg.CLOUDINARY_API_KEY,
		cfg.CLOUDINARY_API_SECRET,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	cld.Config.URL.Secure = true

	return cld, nil
}
