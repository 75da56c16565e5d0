package transcriber

import (
	"context"
	"io"
)

// Transcriber turns one recording into best-effort text. Nothing about the shape of the
// text is guaranteed, callers validate it.
type Transcriber interface {
	SendAudio(ctx context.Context, input io.Reader, fileExtension string, prompt string) (result string, err error)
}
