// Package fetch downloads remote audio sources with yt-dlp so they can be
// probed and split locally. It returns the downloaded file path together
// with the source title and description, which often carries a tracklist.
package fetch
