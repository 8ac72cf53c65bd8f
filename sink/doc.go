// Package sink writes pipeline results to disk: processed frames as PNG or BMP
// images and probe reports as text files.
package sink
