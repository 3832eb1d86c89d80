package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/multierr"

	"github.com/haukened/rr-query/internal/dns/common/log"
	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/gateways/wire"
	"github.com/haukened/rr-query/internal/dns/services/lookup"
)

// Error message constants for consistent error handling
const (
	errNoServersProvided = "no upstream DNS servers provided"
	errServerFailed      = "server %s: %w"
	errAllServersFailed  = "all %d upstream servers failed"
	errAborted           = "lookup aborted after %d of %d upstream servers: %w"
	errQueryTimeout      = "query timeout after %v"
	errFailedToConnect   = "failed to connect: %w"
	errInvalidQuery      = "invalid query: %w"
	errWriteFailed       = "write failed: %w"
	errReadFailed        = "read failed: %w"
)

// DefaultTimeout bounds an exchange whose context carries no deadline.
const DefaultTimeout = 5 * time.Second

// maxUDPSize is the classic DNS-over-UDP payload limit. Larger answers come
// back with TC set.
const maxUDPSize = 512

// Resolver sends encoded queries to upstream DNS servers over UDP and
// returns the raw response bytes. It does not decode or interpret answers.
type Resolver struct {
	servers  []string      // List of upstream DNS servers (e.g., "1.1.1.1:53")
	timeout  time.Duration // Default timeout for DNS queries
	parallel bool          // Whether to query all servers at once
	dial     DialFunc      // Dial function to create network connections
	logger   log.Logger
}

// DialFunc defines a function type for establishing a network connection.
// It takes a context for cancellation, the network type (e.g., "tcp", "udp"),
// and the address to connect to, returning a net.Conn and an error if any occurs.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Options defines configuration parameters for the upstream resolver.
type Options struct {
	// required parameters
	Servers  []string
	Timeout  time.Duration
	Parallel bool
	// options to inject for testing purposes
	Dial   DialFunc
	Logger log.Logger
}

// NewResolver creates a new upstream resolver with the specified options.
// Returns an error if the server list is empty. Sets the default timeout and
// dial function if not provided.
func NewResolver(opts Options) (*Resolver, error) {
	if len(opts.Servers) == 0 {
		return nil, errors.New(errNoServersProvided)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	return &Resolver{
		servers:  opts.Servers,
		timeout:  opts.Timeout,
		parallel: opts.Parallel,
		dial:     opts.Dial,
		logger:   log.WithComponent(opts.Logger, "upstream"),
	}, nil
}

// ensureContextDeadline ensures the context has a deadline, adding the resolver's default timeout if needed.
// Returns the context (potentially with added timeout) and a cancel function if one was created.
func (r *Resolver) ensureContextDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, r.timeout)
	}
	return ctx, nil
}

// Exchange sends query to the configured servers and returns the first
// response whose transaction id matches the query's. Datagrams with any
// other id are discarded while the read continues.
func (r *Resolver) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	id, err := wire.MessageID(query)
	if err != nil {
		return nil, fmt.Errorf(errInvalidQuery, err)
	}

	ctx, cancel := r.ensureContextDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}

	if r.parallel {
		return r.exchangeParallel(ctx, query, id)
	}
	return r.exchangeSerial(ctx, query, id)
}

// exchangeSerial tries each server in order until one responds.
func (r *Resolver) exchangeSerial(ctx context.Context, query []byte, id uint16) ([]byte, error) {
	var errs error
	for i, server := range r.servers {
		resp, err := r.queryServer(ctx, server, query, id)
		if err == nil {
			return resp, nil
		}
		r.logger.Warn(map[string]any{"server": server, "error": err.Error()}, "upstream query failed")
		errs = multierr.Append(errs, fmt.Errorf(errServerFailed, server, err))
		if ctx.Err() != nil {
			return nil, fmt.Errorf(errAborted, i+1, len(r.servers), multierr.Append(ctx.Err(), errs))
		}
	}
	return nil, fmt.Errorf(errAllServersFailed+": %w", len(r.servers), errs)
}

// exchangeParallel queries every server at once and returns the first answer.
func (r *Resolver) exchangeParallel(ctx context.Context, query []byte, id uint16) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	responseChan := make(chan []byte, 1)
	errorChan := make(chan error, len(r.servers))

	for _, server := range r.servers {
		go func(srv string) {
			resp, err := r.queryServer(ctx, srv, query, id)
			if err != nil {
				errorChan <- fmt.Errorf(errServerFailed, srv, err)
				return
			}
			select {
			case responseChan <- resp:
			default:
			}
		}(server)
	}

	var errs error
	for range r.servers {
		select {
		case resp := <-responseChan:
			return resp, nil
		case err := <-errorChan:
			errs = multierr.Append(errs, err)
		case <-ctx.Done():
			return nil, fmt.Errorf(errQueryTimeout+": %w", r.timeout, ctx.Err())
		}
	}
	// workers may report ctx.Err() before the select above sees Done
	if ctx.Err() != nil {
		return nil, fmt.Errorf(errQueryTimeout+": %w", r.timeout, multierr.Append(ctx.Err(), errs))
	}
	return nil, fmt.Errorf(errAllServersFailed+": %w", len(r.servers), errs)
}

// queryServer performs one UDP exchange with context cancellation support.
func (r *Resolver) queryServer(ctx context.Context, server string, query []byte, id uint16) ([]byte, error) {
	conn, err := r.dial(ctx, "udp", server)
	if err != nil {
		return nil, fmt.Errorf(errFailedToConnect, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}

	type result struct {
		response []byte
		err      error
	}
	resultChan := make(chan result, 1)

	go func() {
		if _, err := conn.Write(query); err != nil {
			resultChan <- result{err: fmt.Errorf(errWriteFailed, err)}
			return
		}
		resp, err := r.readMatching(conn, server, id)
		resultChan <- result{response: resp, err: err}
	}()

	select {
	case res := <-resultChan:
		return res.response, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// readMatching reads datagrams until one carries the expected id.
func (r *Resolver) readMatching(conn net.Conn, server string, id uint16) ([]byte, error) {
	buffer := make([]byte, maxUDPSize)
	for {
		n, err := conn.Read(buffer)
		if err != nil {
			return nil, fmt.Errorf(errReadFailed, err)
		}
		if n < domain.HeaderSize {
			r.logger.Debug(map[string]any{"server": server, "bytes": n}, "discarding short datagram")
			continue
		}
		got, _ := wire.MessageID(buffer[:n])
		if got != id {
			r.logger.Debug(map[string]any{
				"server": server, "want_id": id, "got_id": got,
			}, "discarding datagram with mismatched id")
			continue
		}
		resp := make([]byte, n)
		copy(resp, buffer[:n])
		r.logger.Debug(map[string]any{"server": server, "id": id, "bytes": n}, "received response")
		return resp, nil
	}
}

var _ lookup.Exchanger = (*Resolver)(nil)
