// Package directorfile decodes Macromedia/Adobe Director's RIFX container
// format: the imap/mmap resource tables backing .dir/.dcr/.cst/.cxt movies
// and casts, and the projector executables (.exe/standalone) that embed an
// Application archive describing a bundle of such movies and casts.
//
// Open a standalone archive or a projector with Open, or parse a RIFX
// container already located at a known offset with OpenArchiveAt. Both
// return an Archive discriminated by Kind between a plain Director movie/
// cast, a Shockwave movie/cast, and an Application bundle.
package directorfile
