// Package scanner discovers video files in a library folder and prepares
// them for identification: extension filtering, an optional minimum
// duration gate backed by ffprobe, and title cleaning via textutil.
package scanner
