package domain

import "errors"

var (
	ErrNoSnapshot      = errors.New("no classification cycle has completed yet")
	ErrInvalidSpeed    = errors.New("playback speed out of range")
	ErrClassifierReply = errors.New("classifier returned an error payload")
)
