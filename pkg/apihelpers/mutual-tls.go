package apihelpers

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"os"
)

type CertificatePaths struct {
	ServerCertPath string `json:"server_cert_path" yaml:"server_cert_path"`
	ServerKeyPath  string `json:"server_key_path" yaml:"server_key_path"`
	CACertPath     string `json:"ca_cert_path" yaml:"ca_cert_path"`
}

// LoadTLSConfig builds a server config that requires client certificates signed by the CA.
func LoadTLSConfig(paths CertificatePaths) (*tls.Config, error) {
	serverCert, caCertPool, err := loadCertificates(paths)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{serverCert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    caCertPool,
	}, nil
}

// LoadClientTLSConfig builds a client config presenting the certificate and trusting the CA.
func LoadClientTLSConfig(paths CertificatePaths) (*tls.Config, error) {
	cert, caCertPool, err := loadCertificates(paths)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caCertPool,
	}, nil
}

func loadCertificates(paths CertificatePaths) (tls.Certificate, *x509.CertPool, error) {
	cert, err := tls.LoadX509KeyPair(paths.ServerCertPath, paths.ServerKeyPath)
	if err != nil {
		return tls.Certificate{}, nil, err
	}

	caCert, err := os.ReadFile(paths.CACertPath)
	if err != nil {
		return tls.Certificate{}, nil, err
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return tls.Certificate{}, nil, errors.New("no certificates found in CA file")
	}
	return cert, caCertPool, nil
}
