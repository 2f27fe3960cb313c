package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/dnslab/recursor/internal/config"
	"github.com/dnslab/recursor/internal/resolver"
	"github.com/dnslab/recursor/pkg/dns"
)

// Server owns the UDP listen loop and fans each datagram out to the
// handler on its own goroutine. Resolutions share no mutable state, so
// no locking beyond the lifecycle flags is needed.
type Server struct {
	config   *config.Config
	resolver resolver.Resolver
	handler  *Handler

	udpConn *net.UDPConn

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// New creates a server from the given configuration, building the
// resolver the configured mode asks for.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	s.resolver = buildResolver(cfg)
	s.handler = NewHandler(s.resolver)

	log.Printf("Resolver initialized: %s mode", cfg.Resolver.Mode)
	return s, nil
}

func buildResolver(cfg *config.Config) resolver.Resolver {
	settings := cfg.ResolverSettings()
	switch cfg.Resolver.Mode {
	case config.ModeForward:
		return resolver.NewForwardResolver(settings, nil)
	default:
		return resolver.NewIterativeResolver(settings, nil)
	}
}

// Start binds the UDP socket and blocks serving queries until Close.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("server already started")
	}
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("server has been closed")
	}
	s.started = true
	s.mu.Unlock()

	addr, err := net.ResolveUDPAddr("udp", s.config.Server.Address)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address: %w", err)
	}
	s.udpConn, err = net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on UDP: %w", err)
	}

	log.Printf("DNS server started on %s", s.config.Server.Address)

	s.wg.Add(1)
	go s.serveUDP()

	s.wg.Wait()
	return nil
}

func (s *Server) serveUDP() {
	defer s.wg.Done()

	buf := make([]byte, dns.PacketSize)

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		if s.config.Server.ReadTimeout > 0 {
			s.udpConn.SetReadDeadline(time.Now().Add(s.config.Server.ReadTimeout))
		}

		n, clientAddr, err := s.udpConn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			if s.ctx.Err() != nil {
				return
			}
			log.Printf("UDP read error: %v", err)
			continue
		}

		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		s.wg.Add(1)
		go s.serveDatagram(datagram, clientAddr)
	}
}

func (s *Server) serveDatagram(data []byte, clientAddr *net.UDPAddr) {
	defer s.wg.Done()

	reply, err := s.handler.HandleDatagram(s.ctx, data)
	if err != nil {
		log.Printf("Dropped datagram from %s: %v", clientAddr, err)
		return
	}

	if s.config.Server.WriteTimeout > 0 {
		s.udpConn.SetWriteDeadline(time.Now().Add(s.config.Server.WriteTimeout))
	}
	if _, err := s.udpConn.WriteToUDP(reply, clientAddr); err != nil {
		log.Printf("Failed to send response to %s: %v", clientAddr, err)
	}
}

// Close stops the listen loop, waits for in-flight resolutions and
// releases the resolver.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	if s.udpConn != nil {
		s.udpConn.Close()
	}
	s.wg.Wait()

	return s.resolver.Close()
}
