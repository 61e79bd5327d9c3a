// Package imagemeta extracts EXIF metadata from image files as flat maps
// of typed values.
//
// # Quick Start
//
// Reading the metadata of one image:
//
//	file, err := imagemeta.Open("IMG_0001.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := json.Marshal(file.Fields)
//	fmt.Println(string(data)) // {"ISOSpeedRatings":400,"Make":"Canon",...}
//
// # Supported Containers
//
//   - JPEG: EXIF in the APP1 segment
//   - TIFF and TIFF-based camera raw (DNG, NEF, CR2, ARW)
//   - PNG: eXIf chunk
//   - WebP: RIFF EXIF chunk
//   - HEIC/HEIF: Exif item in the meta box
//
// # Values
//
// Every field is first rendered as display text (rationals as decimals,
// enumerations as labels, dates as "YYYY-MM-DD HH:MM:SS"), then coerced:
//
//   - text that parses as a base-10 int64 becomes an integer ("007" is 7)
//   - otherwise text that parses as a finite decimal float becomes a float
//     ("4.0", "2.8")
//   - anything else stays a string ("1/100", "Canon")
//
// The variant is a property of the rendered text, not of the EXIF field
// type. JSON encoding of a Fields map yields numbers and strings only.
//
// # Batches
//
// ExtractAll fans a list of paths out over a worker pool and calls back
// for each file that decodes. Files that fail are dropped silently:
//
//	stats := imagemeta.ExtractAll(ctx, paths, func(f *imagemeta.File) {
//		rep.Report(f)
//	}, imagemeta.WithWorkers(8))
//
// # Errors
//
// Open returns *UnsupportedFormatError, *CorruptedFileError,
// *NoMetadataError, *OutOfBoundsError or a wrapped I/O or goexif error.
// ExtractAll does not distinguish them.
package imagemeta
