package executor

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
)

var (
	// ErrNoAddress is returned for nodes without an ip address
	ErrNoAddress = errors.New("The node has no ip address")
	// ErrNoCredentials is returned for nodes without private key or password
	ErrNoCredentials = errors.New("The node has no ssh credentials")
)

// Stream identifies an output stream of a remote command
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// LineHandler handles a single line of output of a command running on target
type LineHandler func(ctx context.Context, target Target, line string)

// Decorator wraps the handler of a stream; it has to call next to keep the wrapped behaviour
type Decorator func(stream Stream, next LineHandler) LineHandler

// Target is the address and credentials of a build node
type Target struct {
	Host       string
	Port       int
	User       string
	PrivateKey string
	Password   string
}

// ExitError is returned when the remote command exits with a non-zero exit code
type ExitError struct {
	Command  string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %v", e.Command, e.ExitCode)
}

// TargetFromNode resolves the target from the node recorded on a build; missing port and user fall back to config
func TargetFromNode(node map[string]interface{}, config *api.ExecutorConfig) (target Target, err error) {
	target.Host = stringValue(node, "public_ip_addr")
	if target.Host == "" {
		target.Host = stringValue(node, "ip_addr")
	}
	if target.Host == "" {
		return target, ErrNoAddress
	}

	target.User = stringValue(node, "username")
	target.PrivateKey = stringValue(node, "ssh_private_key")
	target.Password = stringValue(node, "password")

	if value, ok := node["port"]; ok && value != nil {
		switch v := value.(type) {
		case int:
			target.Port = v
		case int64:
			target.Port = int(v)
		case float64:
			target.Port = int(v)
		case string:
			target.Port, err = strconv.Atoi(v)
			if err != nil {
				return target, fmt.Errorf("node port %q is not a number: %w", v, err)
			}
		default:
			return target, fmt.Errorf("node port has unsupported type %T", value)
		}
	}

	if config != nil {
		if target.Port == 0 {
			target.Port = config.Port
		}
		if target.User == "" {
			target.User = config.User
		}
	}

	return target, nil
}

func stringValue(node map[string]interface{}, key string) string {
	value, _ := node[key].(string)
	return value
}
