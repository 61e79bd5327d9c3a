package exif

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/rwcarlsen/goexif/tiff"
	"github.com/samber/lo"
)

// Render returns the display text for one decoded field.
//
// The text depends on both the value's storage format and the tag's
// meaning: rationals become decimals, enumerations become labels, EXIF
// dates use dashes, versions read as "2.30". This text is what value
// coercion sees, so "400" ends up an integer and "1/100" stays text.
//
// order is the byte order of the enclosing TIFF stream. Only UNICODE
// user comments need it; nil means big-endian.
func Render(name string, tag *tiff.Tag, order binary.ByteOrder) string {
	switch tag.Format() {
	case tiff.StringVal:
		return renderString(name, tag)
	case tiff.IntVal:
		return renderInts(name, tag)
	case tiff.RatVal:
		return renderRationals(name, tag)
	case tiff.FloatVal:
		return joinValues(tag, func(i int) string {
			f, err := tag.Float(i)
			if err != nil {
				return "?"
			}
			return strconv.FormatFloat(f, 'f', -1, 64)
		})
	case tiff.UndefVal:
		return renderUndefined(name, tag, order)
	default:
		return tag.String()
	}
}

func joinValues(tag *tiff.Tag, render func(i int) string) string {
	return strings.Join(lo.Times(int(tag.Count), render), ", ")
}

var dateTimeFields = map[string]bool{
	"DateTime":          true,
	"DateTimeOriginal":  true,
	"DateTimeDigitized": true,
	"GPSDateStamp":      true,
}

func renderString(name string, tag *tiff.Tag) string {
	s, err := tag.StringVal()
	if err != nil {
		return tag.String()
	}
	if dateTimeFields[name] {
		return dashedDate(s)
	}
	return s
}

// dashedDate rewrites an EXIF "YYYY:MM:DD[ HH:MM:SS]" date to use dashes.
// Anything that does not look like one is returned unchanged.
func dashedDate(s string) string {
	if len(s) < 10 || s[4] != ':' || s[7] != ':' {
		return s
	}
	if len(s) > 10 && s[10] != ' ' {
		return s
	}
	return s[:4] + "-" + s[5:7] + "-" + s[8:]
}

func renderInts(name string, tag *tiff.Tag) string {
	labels, enumerated := enumLabels[name]
	return joinValues(tag, func(i int) string {
		v, err := tag.Int64(i)
		if err != nil {
			return "?"
		}
		if name == "Flash" {
			return flashLabel(v)
		}
		if enumerated {
			if label, ok := labels[v]; ok {
				return label
			}
		}
		return strconv.FormatInt(v, 10)
	})
}

var gpsCoordFields = map[string]bool{
	"GPSLatitude":      true,
	"GPSLongitude":     true,
	"GPSDestLatitude":  true,
	"GPSDestLongitude": true,
}

func renderRationals(name string, tag *tiff.Tag) string {
	parts := lo.Times(int(tag.Count), func(i int) string {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return "?"
		}
		if name == "ExposureTime" {
			return fraction(num, den)
		}
		return decimal(num, den)
	})

	switch {
	case gpsCoordFields[name] && len(parts) == 3:
		return fmt.Sprintf("%s deg %s min %s sec", parts[0], parts[1], parts[2])
	case name == "GPSTimeStamp" && len(parts) == 3:
		return fmt.Sprintf("%s:%s:%s", pad2(parts[0]), pad2(parts[1]), pad2(parts[2]))
	}
	return strings.Join(parts, ", ")
}

// decimal renders num/den as an integer when exact, otherwise as the
// shortest decimal that round-trips.
func decimal(num, den int64) string {
	if den == 0 {
		return fmt.Sprintf("%d/0", num)
	}
	if num%den == 0 {
		return strconv.FormatInt(num/den, 10)
	}
	return strconv.FormatFloat(float64(num)/float64(den), 'f', -1, 64)
}

// fraction renders num/den in lowest terms, or as an integer when exact.
func fraction(num, den int64) string {
	if den == 0 {
		return fmt.Sprintf("%d/0", num)
	}
	if num%den == 0 {
		return strconv.FormatInt(num/den, 10)
	}
	g := gcd(num, den)
	return fmt.Sprintf("%d/%d", num/g, den/g)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// pad2 left-pads the integer part of a rendered number to two digits.
func pad2(s string) string {
	intPart, _, _ := strings.Cut(s, ".")
	if len(intPart) == 1 {
		return "0" + s
	}
	return s
}

var versionFields = map[string]bool{
	"ExifVersion":             true,
	"FlashpixVersion":         true,
	"InteroperabilityVersion": true,
}

func renderUndefined(name string, tag *tiff.Tag, order binary.ByteOrder) string {
	val := tag.Val
	switch {
	case versionFields[name]:
		if v, ok := version(val); ok {
			return v
		}
		return strings.TrimRight(string(val), "\x00")
	case name == "UserComment":
		return userComment(val, order)
	case name == "ComponentsConfiguration":
		return components(val)
	case name == "SceneType" && len(val) == 1 && val[0] == 1:
		return "directly photographed"
	case name == "FileSource" && len(val) == 1 && val[0] == 3:
		return "digital still camera"
	}
	if len(val) == 0 {
		return ""
	}
	return "0x" + hex.EncodeToString(val)
}

// version renders four ASCII digits "0230" as "2.30".
func version(b []byte) (string, bool) {
	if len(b) != 4 {
		return "", false
	}
	major, err := strconv.Atoi(string(b[:2]))
	if err != nil {
		return "", false
	}
	if _, err := strconv.Atoi(string(b[2:])); err != nil {
		return "", false
	}
	return fmt.Sprintf("%d.%s", major, b[2:]), true
}

// userComment strips the eight byte character-code header.
func userComment(b []byte, order binary.ByteOrder) string {
	if len(b) < 8 {
		return strings.TrimRight(string(b), "\x00 ")
	}
	code, body := string(b[:8]), b[8:]
	switch code {
	case "UNICODE\x00":
		if order == nil {
			order = binary.BigEndian
		}
		units := make([]uint16, 0, len(body)/2)
		for i := 0; i+1 < len(body); i += 2 {
			units = append(units, order.Uint16(body[i:]))
		}
		return strings.TrimRight(string(utf16.Decode(units)), "\x00 ")
	case "ASCII\x00\x00\x00", "\x00\x00\x00\x00\x00\x00\x00\x00":
		return strings.TrimRight(string(body), "\x00 ")
	default:
		return "0x" + hex.EncodeToString(b)
	}
}

var componentNames = []string{"", "Y", "Cb", "Cr", "R", "G", "B"}

func components(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if int(c) >= len(componentNames) {
			return "0x" + hex.EncodeToString(b)
		}
		sb.WriteString(componentNames[c])
	}
	return sb.String()
}

func flashLabel(v int64) string {
	parts := []string{"not fired"}
	if v&0x01 != 0 {
		parts[0] = "fired"
	}
	switch (v >> 1) & 0x03 {
	case 2:
		parts = append(parts, "return light not detected")
	case 3:
		parts = append(parts, "return light detected")
	}
	switch (v >> 3) & 0x03 {
	case 1:
		parts = append(parts, "forced")
	case 2:
		parts = append(parts, "suppressed")
	case 3:
		parts = append(parts, "auto")
	}
	if v&0x20 != 0 {
		parts = append(parts, "no flash function")
	}
	if v&0x40 != 0 {
		parts = append(parts, "red-eye reduction")
	}
	return strings.Join(parts, ", ")
}

// enumLabels holds the EXIF 2.3 labels for enumerated SHORT tags.
var enumLabels = map[string]map[int64]string{
	"Orientation": {
		1: "top-left", 2: "top-right", 3: "bottom-right", 4: "bottom-left",
		5: "left-top", 6: "right-top", 7: "right-bottom", 8: "left-bottom",
	},
	"ResolutionUnit":           {1: "none", 2: "inch", 3: "cm"},
	"FocalPlaneResolutionUnit": {1: "none", 2: "inch", 3: "cm"},
	"ExposureProgram": {
		0: "not defined", 1: "manual", 2: "normal program", 3: "aperture priority",
		4: "shutter priority", 5: "creative program", 6: "action program",
		7: "portrait mode", 8: "landscape mode",
	},
	"MeteringMode": {
		0: "unknown", 1: "average", 2: "center-weighted average", 3: "spot",
		4: "multi-spot", 5: "pattern", 6: "partial", 255: "other",
	},
	"LightSource": {
		0: "unknown", 1: "daylight", 2: "fluorescent", 3: "tungsten", 4: "flash",
		9: "fine weather", 10: "cloudy weather", 11: "shade",
		12: "daylight fluorescent", 13: "day white fluorescent",
		14: "cool white fluorescent", 15: "white fluorescent",
		17: "standard light A", 18: "standard light B", 19: "standard light C",
		20: "D55", 21: "D65", 22: "D75", 23: "D50",
		24: "ISO studio tungsten", 255: "other",
	},
	"ColorSpace": {1: "sRGB", 0xFFFF: "uncalibrated"},
	"SensingMethod": {
		1: "not defined", 2: "one-chip color area", 3: "two-chip color area",
		4: "three-chip color area", 5: "color sequential area",
		7: "trilinear", 8: "color sequential linear",
	},
	"ExposureMode":     {0: "auto", 1: "manual", 2: "auto bracket"},
	"WhiteBalance":     {0: "auto", 1: "manual"},
	"SceneCaptureType": {0: "standard", 1: "landscape", 2: "portrait", 3: "night scene"},
	"YCbCrPositioning": {1: "centered", 2: "co-sited"},
	"Contrast":         {0: "normal", 1: "soft", 2: "hard"},
	"Saturation":       {0: "normal", 1: "low", 2: "high"},
	"Sharpness":        {0: "normal", 1: "soft", 2: "hard"},
	"GainControl": {
		0: "none", 1: "low gain up", 2: "high gain up",
		3: "low gain down", 4: "high gain down",
	},
	"CustomRendered":       {0: "normal", 1: "custom"},
	"SubjectDistanceRange": {0: "unknown", 1: "macro", 2: "close view", 3: "distant view"},
	"GPSAltitudeRef":       {0: "above sea level", 1: "below sea level"},
}
