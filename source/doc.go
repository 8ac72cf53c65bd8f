// Package source produces BGRA frames and hands them to a Submitter, usually a
// *pipeline.Pipeline.
//
// PatternSource synthesizes test frames at a fixed rate. DirSource decodes the
// images in a directory (PNG, JPEG, GIF, BMP, WebP) and can keep watching it for
// new files.
package source
