// Package watch monitors a library folder for new video files and
// coalesces filesystem events into scan triggers.
package watch
