package ports

import "context"

// MessageDispatcher entrega uma mensagem ao provedor do canal e devolve o id do provedor.
type MessageDispatcher interface {
	Send(ctx context.Context, channel, to, message string) (providerID string, err error)
}
