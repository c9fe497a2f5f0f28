package manager

import (
	"github.com/yourusername/stackwm/internal/types"
)

// ApplySizeHints constrains a proposed window size by the client's
// WM_NORMAL_HINTS: the base size is factored out, the aspect ratio
// clamped, the remainder rounded down to the resize increment and
// capped at the maximum, and the base added back. The result is never
// smaller than 1x1.
func ApplySizeHints(h types.SizeHints, w, hgt uint32) (uint32, uint32) {
	iw := int(w) - h.BaseW
	ih := int(hgt) - h.BaseH
	if iw < 1 {
		iw = 1
	}
	if ih < 1 {
		ih = 1
	}

	// Aspect limits apply to the size without the base, per ICCCM.
	if h.MaxAspectNum > 0 && h.MaxAspectDen > 0 && iw*h.MaxAspectDen > ih*h.MaxAspectNum {
		iw = ih * h.MaxAspectNum / h.MaxAspectDen
	}
	if h.MinAspectNum > 0 && h.MinAspectDen > 0 && iw*h.MinAspectDen < ih*h.MinAspectNum {
		ih = iw * h.MinAspectDen / h.MinAspectNum
	}

	if h.IncW > 0 {
		iw -= iw % h.IncW
	}
	if h.IncH > 0 {
		ih -= ih % h.IncH
	}

	if h.MaxW > 0 && iw+h.BaseW > h.MaxW {
		iw = h.MaxW - h.BaseW
	}
	if h.MaxH > 0 && ih+h.BaseH > h.MaxH {
		ih = h.MaxH - h.BaseH
	}

	ow := iw + h.BaseW
	oh := ih + h.BaseH
	if ow < 1 {
		ow = 1
	}
	if oh < 1 {
		oh = 1
	}
	return uint32(ow), uint32(oh)
}
