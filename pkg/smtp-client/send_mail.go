package smtp_client

import (
	"log/slog"
	"net/textproto"

	"github.com/knadh/smtppool"
)

// SendMail sends an HTML email through the next pool in round robin order. A pool that fails
// to send is replaced by a fresh connection for the following calls.
func (sc *SmtpClients) SendMail(
	to []string,
	subject string,
	htmlContent string,
) error {
	sc.mu.Lock()
	if len(sc.connectionPool) < 1 {
		sc.connectionPool, sc.poolServers = initConnectionPool(sc.servers)
		if len(sc.connectionPool) < 1 {
			sc.mu.Unlock()
			return ErrNoServers
		}
	}
	sc.counter += 1
	index := int(sc.counter % uint64(len(sc.connectionPool)))
	selectedServer := sc.connectionPool[index]
	sc.mu.Unlock()

	e := smtppool.Email{
		To:      to,
		From:    sc.servers.From,
		Sender:  sc.servers.Sender,
		ReplyTo: sc.servers.ReplyTo,
		Subject: subject,
		HTML:    []byte(htmlContent),
		Headers: textproto.MIMEHeader{},
	}
	err := selectedServer.Send(e)

	if err != nil {
		slog.Error("error when trying to send email", slog.String("error", err.Error()))
		sc.reconnect(index, selectedServer)
	}
	return err
}

func (sc *SmtpClients) reconnect(index int, failed *smtppool.Pool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// another goroutine already replaced it
	if index >= len(sc.connectionPool) || sc.connectionPool[index] != failed {
		return
	}

	server := sc.poolServers[index]
	pool, errReconnect := connectToPool(server)
	if errReconnect != nil {
		slog.Error("cannot reconnect pool", slog.String("error", errReconnect.Error()), slog.String("server", server.Host))
		return
	}
	slog.Info("reconnected to pool", slog.String("server", server.Host))
	failed.Close()
	sc.connectionPool[index] = pool
}
