// Package textutil provides title normalization for noisy media file names,
// string similarity scoring, and filename sanitization helpers.
package textutil
