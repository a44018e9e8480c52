package constants

const (
	DataFormate = "2006-01-02 15:04:05"

	DefaultPageSize = 20
	MaxPageSize     = 100

	MaxCommentLength = 500 // characters, not bytes

	DefaultRequestTimeoutMs = 5000
)
