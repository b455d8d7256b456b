// Package icns reads and writes Apple ICNS icon containers.
//
// An ICNS file is a big-endian container: the magic "icns", the total file
// length, then a sequence of entries, each an OSType code, the entry length
// including its 8-byte header, and the entry payload. Modern icon types carry
// a PNG payload; [Pack] produces only those.
package icns

// Format is the payload encoding of an icon type.
type Format int

const (
	FormatPackBits Format = iota // 24-bit RGB, PackBits compressed
	FormatMask                   // 8-bit alpha mask for a PackBits entry
	FormatARGB                   // ARGB, PackBits compressed
	FormatPNG                    // PNG (or JPEG 2000) payload
)

func (f Format) String() string {
	switch f {
	case FormatPackBits:
		return "packbits"
	case FormatMask:
		return "mask"
	case FormatARGB:
		return "argb"
	case FormatPNG:
		return "png"
	}
	return "unknown"
}

// IconType is one row of the ICNS icon type table.
type IconType struct {
	OSType string
	Size   int
	Format Format
}

// SupportedIconTypes is the ICNS icon type table in canonical order.
var SupportedIconTypes = []IconType{
	{"is32", 16, FormatPackBits},
	{"il32", 32, FormatPackBits},
	{"ih32", 48, FormatPackBits},
	{"it32", 128, FormatPackBits},
	{"s8mk", 16, FormatMask},
	{"l8mk", 32, FormatMask},
	{"h8mk", 48, FormatMask},
	{"t8mk", 128, FormatMask},
	{"ic04", 16, FormatARGB},
	{"ic05", 32, FormatARGB},
	{"icp4", 16, FormatPNG},
	{"icp5", 32, FormatPNG},
	{"icp6", 64, FormatPNG},
	{"ic07", 128, FormatPNG},
	{"ic08", 256, FormatPNG},
	{"ic09", 512, FormatPNG},
	{"ic10", 1024, FormatPNG}, // 512@2x
	{"ic11", 32, FormatPNG},   // 16@2x
	{"ic12", 64, FormatPNG},   // 32@2x
	{"ic13", 256, FormatPNG},  // 128@2x
	{"ic14", 512, FormatPNG},  // 256@2x
}

// PNGTypes returns the PNG-format entries of SupportedIconTypes in table order.
func PNGTypes() []IconType {
	var out []IconType
	for _, t := range SupportedIconTypes {
		if t.Format == FormatPNG {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the table row for an OSType code.
func Lookup(osType string) (IconType, bool) {
	for _, t := range SupportedIconTypes {
		if t.OSType == osType {
			return t, true
		}
	}
	return IconType{}, false
}
