package webhookclient

import "context"

type WebhookInterface interface {
	// Publish delivers formatted lines to the chat webhook in bounded-size
	// chunks, sent strictly in order. It returns the number of lines
	// actually delivered; on error, chunks before the failing one stand.
	Publish(ctx context.Context, lines []string) (int, error)
}
