package webserver

import (
	"crypto/tls"
	"log/slog"
	"os"
	"sync"
	"time"
)

// TLSReloader serves a certificate pair and picks up renewed files on disk.
type TLSReloader struct {
	certFile    string
	keyFile     string
	cert        *tls.Certificate
	mu          sync.RWMutex
	lastModCert time.Time
	lastModKey  time.Time
	logger      *slog.Logger
	stop        chan struct{}
	once        sync.Once
}

func NewTLSReloader(certFile, keyFile string, logger *slog.Logger) (*TLSReloader, error) {
	reloader := &TLSReloader{
		certFile: certFile,
		keyFile:  keyFile,
		logger:   logger,
		stop:     make(chan struct{}),
	}

	if err := reloader.reload(); err != nil {
		return nil, err
	}

	go reloader.watchFiles(5 * time.Minute)

	return reloader, nil
}

// Close stops watching the files.
func (r *TLSReloader) Close() {
	r.once.Do(func() { close(r.stop) })
}

func (r *TLSReloader) reload() error {
	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return err
	}

	certInfo, _ := os.Stat(r.certFile)
	keyInfo, _ := os.Stat(r.keyFile)

	r.mu.Lock()
	r.cert = &cert
	if certInfo != nil {
		r.lastModCert = certInfo.ModTime()
	}
	if keyInfo != nil {
		r.lastModKey = keyInfo.ModTime()
	}
	r.mu.Unlock()

	r.logger.Info("TLS certificates loaded", "cert", r.certFile)
	return nil
}

func (r *TLSReloader) changed() bool {
	certInfo, err := os.Stat(r.certFile)
	if err != nil {
		r.logger.Warn("stat cert file", "err", err)
		return false
	}
	keyInfo, err := os.Stat(r.keyFile)
	if err != nil {
		r.logger.Warn("stat key file", "err", err)
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return certInfo.ModTime().After(r.lastModCert) || keyInfo.ModTime().After(r.lastModKey)
}

func (r *TLSReloader) watchFiles(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if r.changed() {
				if err := r.reload(); err != nil {
					r.logger.Error("reload certificates", "err", err)
				}
			}
		}
	}
}

func (r *TLSReloader) GetCertificate() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.cert, nil
	}
}

func (r *TLSReloader) GetConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: r.GetCertificate(),
		MinVersion:     tls.VersionTLS12,
	}
}
