package netutil

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultDialTimeout = 10 * time.Second

// TCPConnection is one connected TCP stream, used by both TCPSocket and
// TCPServer handlers. Reads are buffered, so Read, ReadLine and ReadFull
// can be mixed freely. A single reader and a single writer may use it
// concurrently.
type TCPConnection struct {
	id     string
	conn   net.Conn
	reader *bufio.Reader
	logger *zap.Logger

	timeout atomic.Int64
	closed  atomic.Bool
}

func newConnection(conn net.Conn, timeout time.Duration, logger *zap.Logger) *TCPConnection {
	c := &TCPConnection{
		id:     uuid.NewString(),
		conn:   conn,
		reader: bufio.NewReader(conn),
		logger: logger.With(zap.String("remote", conn.RemoteAddr().String())),
	}
	c.timeout.Store(int64(timeout))
	return c
}

// ID identifies the connection in logs.
func (c *TCPConnection) ID() string { return c.id }

func (c *TCPConnection) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }
func (c *TCPConnection) LocalAddr() net.Addr { return c.conn.LocalAddr() }

// SetTimeout sets the deadline applied before every read and write. Zero
// disables it.
func (c *TCPConnection) SetTimeout(d time.Duration) { c.timeout.Store(int64(d)) }

func (c *TCPConnection) deadline() time.Time {
	if d := time.Duration(c.timeout.Load()); d > 0 {
		return time.Now().Add(d)
	}
	return time.Time{}
}

func (c *TCPConnection) Read(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	if err := c.conn.SetReadDeadline(c.deadline()); err != nil {
		return 0, err
	}
	return c.reader.Read(p)
}

func (c *TCPConnection) Write(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	if err := c.conn.SetWriteDeadline(c.deadline()); err != nil {
		return 0, err
	}
	return c.conn.Write(p)
}

func (c *TCPConnection) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// WriteLine writes s followed by a newline.
func (c *TCPConnection) WriteLine(s string) error {
	_, err := c.Write([]byte(s + "\n"))
	return err
}

// ReadLine returns the next line without its "\n" or "\r\n". A final line
// without a terminator is returned as is; after it ReadLine returns io.EOF.
func (c *TCPConnection) ReadLine() (string, error) {
	if c.closed.Load() {
		return "", ErrClosed
	}
	if err := c.conn.SetReadDeadline(c.deadline()); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// ReadFull reads exactly n bytes.
func (c *TCPConnection) ReadFull(n int) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := c.conn.SetReadDeadline(c.deadline()); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close closes the connection. Later calls do nothing.
func (c *TCPConnection) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.logger.Debug("connection closed", zap.String("id", c.id))
	return c.conn.Close()
}

func (c *TCPConnection) Closed() bool { return c.closed.Load() }

type socketOptions struct {
	dialTimeout time.Duration
	ioTimeout   time.Duration
	logger      *zap.Logger
}

// SocketOption configures Dial and Listen.
type SocketOption func(*socketOptions)

func WithDialTimeout(d time.Duration) SocketOption {
	return func(o *socketOptions) { o.dialTimeout = d }
}

// WithIOTimeout sets the initial per-operation timeout of connections.
func WithIOTimeout(d time.Duration) SocketOption {
	return func(o *socketOptions) { o.ioTimeout = d }
}

func WithSocketLogger(logger *zap.Logger) SocketOption {
	return func(o *socketOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newSocketOptions(opts []SocketOption) socketOptions {
	o := socketOptions{dialTimeout: DefaultDialTimeout, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TCPSocket is a client connection.
type TCPSocket struct {
	*TCPConnection
	addr string
}

// Dial connects to addr.
func Dial(ctx context.Context, addr string, opts ...SocketOption) (*TCPSocket, error) {
	o := newSocketOptions(opts)
	d := net.Dialer{Timeout: o.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("dialed", zap.String("addr", addr))
	return &TCPSocket{TCPConnection: newConnection(conn, o.ioTimeout, o.logger), addr: addr}, nil
}

// Addr returns the address passed to Dial.
func (s *TCPSocket) Addr() string { return s.addr }

// Handler serves one accepted connection. Its context is cancelled when the
// server shuts down.
type Handler func(ctx context.Context, conn *TCPConnection)

// TCPServer accepts connections and runs a Handler for each.
type TCPServer struct {
	ln     net.Listener
	opts   socketOptions
	closed atomic.Bool

	mu    sync.Mutex
	conns map[*TCPConnection]struct{}
}

// Listen opens a listener on addr, for example "127.0.0.1:0".
func Listen(addr string, opts ...SocketOption) (*TCPServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &TCPServer{ln: ln, opts: newSocketOptions(opts), conns: make(map[*TCPConnection]struct{})}, nil
}

func (s *TCPServer) Addr() net.Addr { return s.ln.Addr() }

// Serve accepts connections until ctx is done or Close is called. Each
// connection is handled in its own goroutine and closed when its handler
// returns. On shutdown open connections are closed, and Serve waits for all
// handlers before returning.
func (s *TCPServer) Serve(ctx context.Context, handler Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() { s.ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	var serveErr error
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() == nil && !s.closed.Load() {
				serveErr = err
			}
			break
		}
		c := newConnection(conn, s.opts.ioTimeout, s.opts.logger)
		s.track(c, true)
		s.opts.logger.Debug("accepted", zap.String("id", c.ID()))
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer s.track(c, false)
			defer c.Close()
			handler(ctx, c)
		}()
	}

	cancel()
	s.ln.Close()
	s.mu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	wg.Wait()
	return serveErr
}

func (s *TCPServer) track(c *TCPConnection, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

// Close stops the listener, which makes Serve return.
func (s *TCPServer) Close() error {
	s.closed.Store(true)
	if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
