package motion

import (
	"image"

	"github.com/disintegration/gift"
)

// KernelConfig describes the square structuring element used by MaskCleaner.
type KernelConfig struct {
	// Side of the square element in pixels. Must be odd and positive. Default 3
	Size int
	// Run a closing pass (dilate then erode) after the opening pass
	Close bool
}

// DefaultKernelConfig returns a 3x3 element with opening followed by closing
func DefaultKernelConfig() KernelConfig {
	return KernelConfig{
		Size:  3,
		Close: true,
	}
}

// MaskCleaner suppresses speckle noise and fills small holes in a binary mask.
// Opening removes foreground specks smaller than the element, closing fills background
// holes smaller than the element. Both are idempotent morphological filters and so is
// their composition, which means cleaning an already clean mask changes nothing.
type MaskCleaner struct {
	kernel KernelConfig
	filter *gift.GIFT
}

// NewMaskCleaner creates a cleaner for the given kernel
func NewMaskCleaner(kernel KernelConfig) *MaskCleaner {
	filters := []gift.Filter{
		gift.Minimum(kernel.Size, false),
		gift.Maximum(kernel.Size, false),
	}
	if kernel.Close {
		filters = append(filters,
			gift.Maximum(kernel.Size, false),
			gift.Minimum(kernel.Size, false),
		)
	}
	return &MaskCleaner{
		kernel: kernel,
		filter: gift.New(filters...),
	}
}

// Kernel returns cleaner's kernel configuration
func (cleaner *MaskCleaner) Kernel() KernelConfig {
	return cleaner.kernel
}

// Clean returns a new filtered mask. The input mask is left untouched.
func (cleaner *MaskCleaner) Clean(mask *BinaryMask) *BinaryMask {
	bounds := mask.Bounds()
	if cleaner.kernel.Size <= 1 || bounds.Empty() {
		return &BinaryMask{gray: mask.Gray()}
	}
	dst := image.NewGray(bounds)
	cleaner.filter.DrawAt(dst, mask.gray, bounds.Min, gift.CopyOperator)
	return binarize(dst)
}
