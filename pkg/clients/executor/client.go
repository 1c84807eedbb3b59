package executor

import (
	"bufio"
	"context"
	"io"
	"net"
	"strconv"
	"sync"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/sync/errgroup"
)

// MaxLineLength is the longest piece of output handed to a line handler at once
const MaxLineLength = 1024 * 1024

// Client runs commands on remote build nodes and hands every line of their output to a per stream handler chain
//
//go:generate mockgen -package=executor -destination ./mock.go -source=client.go
type Client interface {
	Run(ctx context.Context, target Target, command string) (err error)
	SetHandler(stream Stream, handler LineHandler)
	Decorate(name string, decorator Decorator) (installed bool)
	HandleOutput(ctx context.Context, stream Stream, target Target, reader io.Reader) (err error)
}

// NewClient returns a new executor.Client
func NewClient(config *api.ExecutorConfig) Client {
	return &client{
		config: config,
		handlers: map[Stream]LineHandler{
			Stdout: logLine(Stdout),
			Stderr: logLine(Stderr),
		},
	}
}

type namedDecorator struct {
	name      string
	decorator Decorator
}

type client struct {
	config *api.ExecutorConfig

	mu         sync.RWMutex
	handlers   map[Stream]LineHandler
	decorators []namedDecorator
}

func (c *client) Run(ctx context.Context, target Target, command string) (err error) {
	clientConfig, err := c.clientConfig(target)
	if err != nil {
		return
	}

	address := net.JoinHostPort(target.Host, strconv.Itoa(target.Port))
	dialer := net.Dialer{Timeout: c.config.DialTimeout()}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return errors.Wrapf(err, "Dialing %v failed", address)
	}

	sshConn, channels, requests, err := ssh.NewClientConn(conn, address, clientConfig)
	if err != nil {
		conn.Close()
		return errors.Wrapf(err, "Ssh handshake with %v failed", address)
	}
	sshClient := ssh.NewClient(sshConn, channels, requests)
	defer sshClient.Close()

	session, err := sshClient.NewSession()
	if err != nil {
		return errors.Wrapf(err, "Opening ssh session on %v failed", address)
	}
	defer session.Close()

	stdout, err := session.StdoutPipe()
	if err != nil {
		return
	}
	stderr, err := session.StderrPipe()
	if err != nil {
		return
	}

	log.Debug().Str("host", target.Host).Msgf("Running command on %v", address)

	if err = session.Start(command); err != nil {
		return errors.Wrapf(err, "Starting command on %v failed", address)
	}

	// closing the connection unblocks the readers and Wait when ctx is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			sshClient.Close()
		case <-done:
		}
	}()

	var g errgroup.Group
	g.Go(func() error { return c.HandleOutput(ctx, Stdout, target, stdout) })
	g.Go(func() error { return c.HandleOutput(ctx, Stderr, target, stderr) })
	readErr := g.Wait()

	if err = session.Wait(); err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: command, ExitCode: exitErr.ExitStatus()}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrapf(err, "Running command on %v failed", address)
	}

	return readErr
}

func (c *client) SetHandler(stream Stream, handler LineHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[stream] = handler
}

func (c *client) Decorate(name string, decorator Decorator) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.decorators {
		if d.name == name {
			return false
		}
	}
	c.decorators = append(c.decorators, namedDecorator{name: name, decorator: decorator})

	return true
}

func (c *client) HandleOutput(ctx context.Context, stream Stream, target Target, reader io.Reader) (err error) {
	handle := c.handler(stream)

	lines := bufio.NewReaderSize(reader, 64*1024)
	var line []byte
	split := false
	for {
		fragment, isPrefix, readErr := lines.ReadLine()
		if readErr != nil {
			if len(line) > 0 {
				handle(ctx, target, string(line))
			}
			if readErr == io.EOF {
				return nil
			}
			return readErr
		}

		// lines longer than MaxLineLength are handed over in pieces, the output behind them is still read
		line = append(line, fragment...)
		for len(line) >= MaxLineLength {
			handle(ctx, target, string(line[:MaxLineLength]))
			line = line[MaxLineLength:]
			split = true
		}
		if isPrefix {
			continue
		}
		if len(line) > 0 || !split {
			handle(ctx, target, string(line))
		}
		line, split = line[:0], false
	}
}

// handler returns the handler of stream wrapped by all decorators, the decorator installed last runs first
func (c *client) handler(stream Stream) LineHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()

	handler, ok := c.handlers[stream]
	if !ok {
		handler = func(context.Context, Target, string) {}
	}
	for _, d := range c.decorators {
		handler = d.decorator(stream, handler)
	}

	return handler
}

func (c *client) clientConfig(target Target) (*ssh.ClientConfig, error) {
	if target.Host == "" {
		return nil, ErrNoAddress
	}

	auth := []ssh.AuthMethod{}
	if target.PrivateKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(target.PrivateKey))
		if err != nil {
			return nil, errors.Wrap(err, "Parsing ssh private key failed")
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if target.Password != "" {
		auth = append(auth, ssh.Password(target.Password))
	}
	if len(auth) == 0 {
		return nil, ErrNoCredentials
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if c.config.KnownHostsPath != "" {
		callback, err := knownhosts.New(c.config.KnownHostsPath)
		if err != nil {
			return nil, errors.Wrapf(err, "Reading known hosts from %v failed", c.config.KnownHostsPath)
		}
		hostKeyCallback = callback
	}

	return &ssh.ClientConfig{
		User:            target.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         c.config.DialTimeout(),
	}, nil
}

func logLine(stream Stream) LineHandler {
	return func(ctx context.Context, target Target, line string) {
		log.Debug().Str("host", target.Host).Str("stream", string(stream)).Msg(line)
	}
}
