// Package assets maintains the local image cache for posters, backdrops,
// and person profile photos, addressed by remote ID.
package assets
