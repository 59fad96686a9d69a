package smtp_client

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"net/smtp"
	"strconv"
	"sync"
	"time"

	"github.com/knadh/smtppool"
)

var ErrNoServers = errors.New("no smtp server connection in the pool")

type SmtpClients struct {
	servers SmtpServerList

	mu             sync.Mutex
	connectionPool []*smtppool.Pool
	poolServers    []SmtpServer
	counter        uint64
}

func NewSmtpClients(config SmtpServerList) (*SmtpClients, error) {
	pools, servers := initConnectionPool(config)
	if len(pools) < 1 {
		return nil, ErrNoServers
	}

	sc := &SmtpClients{
		servers:        config,
		counter:        0,
		connectionPool: pools,
		poolServers:    servers,
	}
	return sc, nil
}

// initConnectionPool skips servers that cannot be reached; the second slice holds the server of each pool.
func initConnectionPool(serverList SmtpServerList) ([]*smtppool.Pool, []SmtpServer) {
	connectionPools := []*smtppool.Pool{}
	servers := []SmtpServer{}
	for _, server := range serverList.Servers {
		pool, err := connectToPool(server)
		if err != nil {
			slog.Error("error setting up connection pool", slog.String("error", err.Error()), slog.String("server", server.Address()))
			continue
		}
		connectionPools = append(connectionPools, pool)
		servers = append(servers, server)
	}
	return connectionPools, servers
}

func connectToPool(server SmtpServer) (*smtppool.Pool, error) {
	auth := smtp.PlainAuth(
		"",
		server.AuthData.Username,
		server.AuthData.Password,
		server.Host,
	)
	if server.AuthData.Username == "" && server.AuthData.Password == "" {
		auth = nil
	}

	tlsOpts := &tls.Config{
		InsecureSkipVerify: server.InsecureSkipVerify,
		ServerName:         server.Host,
	}
	port, err := strconv.Atoi(server.Port)
	if err != nil {
		return nil, err
	}

	connections := server.Connections
	if connections < 1 {
		connections = 1
	}

	pool, err := smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            port,
		MaxConns:        connections,
		IdleTimeout:     time.Duration(server.SendTimeout) * time.Second,
		PoolWaitTimeout: time.Duration(server.SendTimeout) * time.Second,
		TLSConfig:       tlsOpts,
		Auth:            auth,
	})
	return pool, err
}

// Close shuts every pool down.
func (sc *SmtpClients) Close() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for _, pool := range sc.connectionPool {
		pool.Close()
	}
	sc.connectionPool = nil
	sc.poolServers = nil
}
