package dto

import "io"

// Upload is an incoming attachment, independent of how it arrived
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}
