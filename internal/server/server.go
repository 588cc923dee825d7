// Package server runs the datagram endpoint of the HLR/AuC: one worker
// receives requests, answers them in order, and drops anything it cannot
// answer so a single bad request never takes the service down.
package server

import (
	"crypto/rand"
	"net"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/telcosim/hlrauc/internal/codec"
	"github.com/telcosim/hlrauc/internal/logger"
	"github.com/telcosim/hlrauc/internal/milenage"
	"github.com/telcosim/hlrauc/internal/subscriber"
)

// maxFrameSize bounds one received datagram; the protocol has no framing
// beyond the datagram itself.
const maxFrameSize = 1000

var ErrUnknownIdentity = errors.New("unknown identity")

type state int

const (
	stateStopped state = iota
	stateRunning
	stateStopping
)

type Server struct {
	network string
	address string
	store   *subscriber.Store

	mu    sync.Mutex
	state state
	conn  net.PacketConn
	err   error

	wg sync.WaitGroup
}

func New(network, address string, store *subscriber.Store) *Server {
	return &Server{
		network: network,
		address: address,
		store:   store,
	}
}

// Start binds the datagram socket and launches the receive worker. A bind
// failure is fatal: the service does not start.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateStopped {
		return errors.New("server already started")
	}

	if s.network == "unixgram" {
		// A previous run may have left its socket file behind.
		if err := os.Remove(s.address); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "remove stale socket [%s]", s.address)
		}
	}

	conn, err := net.ListenPacket(s.network, s.address)
	if err != nil {
		return errors.Wrapf(err, "bind %s [%s]", s.network, s.address)
	}

	s.conn = conn
	s.state = stateRunning
	s.err = nil

	s.wg.Add(1)
	go s.serve(conn)

	logger.ServerLog.Infof("listening on %s [%s]", s.network, s.address)
	return nil
}

// Stop interrupts a blocked receive by closing the socket, then waits for the
// worker to quiesce. It returns any fatal receive error the worker hit while
// running.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.state != stateRunning {
		s.mu.Unlock()
		return nil
	}
	s.state = stateStopping
	conn := s.conn
	s.mu.Unlock()

	if err := conn.Close(); err != nil {
		logger.ServerLog.Warnf("close socket: %+v", err)
	}
	s.wg.Wait()

	s.mu.Lock()
	s.state = stateStopped
	s.conn = nil
	err := s.err
	s.mu.Unlock()

	if s.network == "unixgram" {
		if rmErr := os.Remove(s.address); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.ServerLog.Warnf("remove socket [%s]: %+v", s.address, rmErr)
		}
	}

	logger.ServerLog.Infoln("server stopped")
	return err
}

// Addr reports the bound local address, or nil when stopped. Useful when the
// configured address lets the kernel pick the port.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Err reports a fatal receive-loop error, if any.
func (s *Server) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Server) serve(conn net.PacketConn) {
	defer s.wg.Done()

	buf := make([]byte, maxFrameSize)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if s.stopping() || errors.Is(err, net.ErrClosed) {
				return
			}
			logger.ServerLog.Errorf("receive failed, worker exiting: %+v", err)
			s.setErr(err)
			return
		}

		// Requests are answered strictly in order; the store is read-only so
		// no further synchronization is needed.
		resp, err := s.handle(buf[:n])
		if err != nil {
			logger.ServerLog.Warnf("dropping request from %v: %+v", addr, err)
			continue
		}

		if _, err := conn.WriteTo(resp, addr); err != nil {
			logger.ServerLog.Warnf("send to %v failed: %+v", addr, err)
		}
	}
}

// handle runs one request through decode, lookup, compute and encode. Every
// failure is returned to the loop, which logs and drops; there is no error
// reply in this protocol.
func (s *Server) handle(data []byte) ([]byte, error) {
	req, err := codec.DecodeRequest(data)
	if err != nil {
		return nil, err
	}

	raw, ok := s.store.Lookup(req.Identity)
	if !ok {
		return nil, errors.Wrap(ErrUnknownIdentity, req.Identity)
	}

	switch req.Kind {
	case codec.KindSIM:
		logger.AuthLog.Debugf("SIM auth for [%s], %d challenges", req.Identity, req.Count)
		return codec.EncodeSIMResponse(req.Identity, raw, req.Count), nil

	case codec.KindAKA:
		fields, err := subscriber.ParseAKA(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "record [%s]", req.Identity)
		}

		var challenge [16]byte
		if _, err := rand.Read(challenge[:]); err != nil {
			return nil, errors.Wrap(err, "generate RAND")
		}

		vector, err := milenage.ComputeVector(fields.Opc, fields.K, challenge, fields.Sqn, fields.Amf)
		if err != nil {
			return nil, errors.Wrapf(err, "derive vector for [%s]", req.Identity)
		}

		logger.AuthLog.Debugf("AKA auth for [%s]", req.Identity)
		return codec.EncodeAKAResponse(req.Identity, vector), nil
	}

	return nil, codec.ErrUnknownRequest
}

func (s *Server) stopping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateStopping
}

func (s *Server) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
